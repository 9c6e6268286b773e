package controllers

type skillGroup struct {
	Title string
	Items []string
}

type timelineItem struct {
	Years       string
	Title       string
	Place       string
	Description string
}

type achievement struct {
	Title       string
	Description string
}

type aboutPage struct {
	Skills       []skillGroup
	Experience   []timelineItem
	Education    []timelineItem
	Achievements []achievement
}

var about = aboutPage{
	Skills: []skillGroup{
		{"Frontend Development", []string{"React", "Next.js", "Vue.js", "TailwindCSS", "Sass", "JavaScript", "TypeScript"}},
		{"Backend Development", []string{"Node.js", "Express", "Django", "Flask", "PHP", "REST APIs", "GraphQL"}},
		{"Databases", []string{"MongoDB", "PostgreSQL", "MySQL", "Firebase", "Redis", "Prisma", "Sequelize"}},
		{"Design & Tools", []string{"Figma", "Adobe XD", "Git", "Docker", "AWS", "CI/CD", "Webpack"}},
	},
	Experience: []timelineItem{
		{"2021 - Present", "Senior Full Stack Developer", "Tech Innovations Inc.",
			"Lead developer for multiple web applications, overseeing the entire development lifecycle and mentoring junior developers."},
		{"2018 - 2021", "Frontend Developer", "WebSolutions Co.",
			"Developed responsive and accessible user interfaces for client projects using React and modern CSS frameworks."},
		{"2016 - 2018", "Junior Web Developer", "Digital Creations",
			"Assisted in the development of websites and web applications using HTML, CSS, JavaScript, and PHP."},
	},
	Education: []timelineItem{
		{"2014 - 2016", "Master's in Computer Science", "Tech University",
			"Specialized in web technologies and software engineering. Thesis on scalable web applications."},
		{"2010 - 2014", "Bachelor's in Computer Science", "State University",
			"Foundations in programming, algorithms, data structures, and software development methodologies."},
		{"2019", "Certification in UI/UX Design", "Design Academy",
			"Intensive program covering user interface design principles, user experience, and prototyping tools."},
	},
	Achievements: []achievement{
		{"AWS Certified Developer", "Professional certification for Amazon Web Services cloud development."},
		{"MongoDB Certified Developer", "Expert-level certification in MongoDB database design and implementation."},
		{"Google UX Design Certification", "Comprehensive training in user experience design principles and practices."},
		{"Hackathon Winner", "First place in Regional Web Development Hackathon for an innovative education platform."},
		{"Open Source Contributor", "Active contributor to several popular open-source JavaScript libraries."},
		{"Technical Speaker", "Regular speaker at local tech meetups and conferences on web development topics."},
	},
}
