package repositories

import (
	"time"

	"portfolio/app/models"
)

func day(s string) time.Time {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedProjects returns the projects shipped with a fresh install. Each
// call returns new records.
func SeedProjects() []*models.Project {
	return []*models.Project{
		{
			Title:           "E-Commerce Platform",
			Description:     "A full-featured e-commerce platform with product management, cart functionality, and payment processing.",
			LongDescription: "Built for a seamless shopping experience and an intuitive management interface. Includes product browsing, search, cart management, secure checkout and order tracking, plus an admin panel for inventory and orders.",
			Thumbnail:       "https://picsum.photos/seed/ecom/600/400",
			TechStack:       "React, Node.js, MongoDB, Stripe",
			Category:        "web",
			DemoLink:        "https://example.com",
			RepoLink:        "https://github.com",
			Status:          models.StatusPublished,
			Featured:        true,
			CreatedAt:       day("2023-01-10"),
		},
		{
			Title:       "AI Image Generator",
			Description: "An application that uses AI to generate images based on text prompts.",
			Thumbnail:   "https://picsum.photos/seed/ai/600/400",
			TechStack:   "Python, TensorFlow, React, Flask",
			Category:    "ai",
			DemoLink:    "https://aichat-demo.com",
			Status:      models.StatusPublished,
			Featured:    true,
			CreatedAt:   day("2023-02-14"),
		},
		{
			Title:       "Data Visualization Dashboard",
			Description: "Interactive dashboard for visualizing complex datasets and analytics.",
			Thumbnail:   "https://picsum.photos/seed/data/600/400",
			TechStack:   "D3.js, React, Node.js, PostgreSQL",
			Category:    "data",
			Status:      models.StatusPublished,
			Featured:    true,
			CreatedAt:   day("2023-03-20"),
		},
		{
			Title:       "Social Media App",
			Description: "A social networking application with real-time chat and media sharing.",
			Thumbnail:   "https://picsum.photos/seed/social/600/400",
			TechStack:   "React Native, Firebase, Redux, Socket.io",
			Category:    "web",
			Status:      models.StatusPublished,
			CreatedAt:   day("2023-04-02"),
		},
		{
			Title:       "Natural Language Processor",
			Description: "A tool for analyzing and processing natural language text data.",
			Thumbnail:   "https://picsum.photos/seed/nlp/600/400",
			TechStack:   "Python, NLTK, SpaCy, FastAPI",
			Category:    "ai",
			Status:      models.StatusPublished,
			CreatedAt:   day("2023-05-11"),
		},
		{
			Title:       "Stock Market Analysis Tool",
			Description: "Application for analyzing stock market trends and making predictions.",
			Thumbnail:   "https://picsum.photos/seed/stock/600/400",
			TechStack:   "Python, Pandas, Matplotlib, Scikit-learn",
			Category:    "data",
			Status:      models.StatusDraft,
			CreatedAt:   day("2023-06-30"),
		},
	}
}

// SeedPosts returns the blog posts shipped with a fresh install.
func SeedPosts() []*models.BlogPost {
	return []*models.BlogPost{
		{
			Title:   "Getting Started with React Hooks",
			Slug:    "getting-started-with-react-hooks",
			Excerpt: "Learn how to use React Hooks to simplify your functional components and manage state effectively.",
			Content: `<p>React Hooks let you use state and other React features without writing a class.</p>
<h2>useState</h2>
<p>The useState hook lets you add state to functional components.</p>
<h2>useEffect</h2>
<p>The useEffect hook lets you perform side effects such as data fetching or subscriptions.</p>
<h2>Conclusion</h2>
<p>Hooks provide a more direct API to the React concepts you already know: props, state, context, refs, and lifecycle.</p>`,
			Image:      "https://picsum.photos/seed/react/1200/600",
			Tags:       "React, JavaScript, Web Development",
			Author:     "Shawaiz",
			Date:       day("2023-06-15"),
			Status:     models.StatusPublished,
			RelatedIDs: []int{2, 3, 4},
		},
		{
			Title:      "Building Responsive Layouts with Tailwind CSS",
			Slug:       "building-responsive-layouts-with-tailwind-css",
			Excerpt:    "Discover how to create beautiful responsive layouts using Tailwind CSS utility classes.",
			Content:    "Tailwind's responsive prefixes such as `md:` and `lg:` apply utilities at breakpoints.\n\nStart mobile first, then layer the larger screens on top.",
			Image:      "https://picsum.photos/seed/tailwind/1200/600",
			Tags:       "CSS, Tailwind, Web Development",
			Author:     "Shawaiz",
			Date:       day("2023-05-22"),
			Status:     models.StatusPublished,
			RelatedIDs: []int{1, 3},
		},
		{
			Title:      "Introduction to TypeScript for JavaScript Developers",
			Slug:       "introduction-to-typescript-for-javascript-developers",
			Excerpt:    "A beginner-friendly guide to TypeScript and how it can improve your JavaScript development experience.",
			Content:    "TypeScript adds static types to JavaScript.\n\n## Why types\n\nTypes catch mistakes before the code runs and document intent.",
			Image:      "https://picsum.photos/seed/typescript/1200/600",
			Tags:       "TypeScript, JavaScript, Programming",
			Author:     "Shawaiz",
			Date:       day("2023-04-10"),
			Status:     models.StatusPublished,
			RelatedIDs: []int{1, 4},
		},
		{
			Title:      "State Management with Redux Toolkit",
			Slug:       "state-management-with-redux-toolkit",
			Excerpt:    "Simplify your Redux code with Redux Toolkit and learn modern state management patterns.",
			Content:    "Redux Toolkit removes most of the boilerplate around stores, reducers and actions.\n\n`createSlice` generates action creators for you.",
			Image:      "https://picsum.photos/seed/redux/1200/600",
			Tags:       "React, Redux, State Management",
			Author:     "Shawaiz",
			Date:       day("2023-03-18"),
			Status:     models.StatusPublished,
			RelatedIDs: []int{1, 3},
		},
		{
			Title:      "Building a REST API with Node.js and Express",
			Slug:       "building-a-rest-api-with-node-js-and-express",
			Excerpt:    "A step-by-step guide to creating a RESTful API using Node.js and Express.",
			Content:    "Express keeps routing small and explicit.\n\n## Routes\n\nMap each resource to a router and keep handlers thin.",
			Image:      "https://picsum.photos/seed/node/1200/600",
			Tags:       "Node.js, Express, Backend",
			Author:     "Shawaiz",
			Date:       day("2023-02-25"),
			Status:     models.StatusDraft,
			RelatedIDs: []int{3},
		},
	}
}

// SeedMessages returns the inbox shipped with a fresh install.
func SeedMessages() []*models.Message {
	return []*models.Message{
		{
			Name:    "John Doe",
			Email:   "john@example.com",
			Subject: "Project inquiry",
			Body:    "Hello, I'm interested in hiring you for a project. Can we discuss details?",
			Date:    day("2023-08-15"),
			Read:    true,
		},
		{
			Name:    "Sarah Johnson",
			Email:   "sarah@example.com",
			Subject: "Collaboration",
			Body:    "Your portfolio is impressive! I'd like to talk about a potential collaboration.",
			Date:    day("2023-08-20"),
		},
		{
			Name:    "Michael Smith",
			Email:   "michael@example.com",
			Subject: "Rates",
			Body:    "Hi, I have a question about your services. What are your rates for a small business website?",
			Date:    day("2023-08-22"),
		},
	}
}
