package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"portfolio/app/mailer"
	"portfolio/app/models"
	"portfolio/app/repositories"
)

// Templates names the email templates used by the inbox.
type Templates struct {
	Contact string
	Reply   string
}

// MessageService handles the contact form and the admin inbox
type MessageService struct {
	messageRepo repositories.MessageRepository
	sender      mailer.Sender
	templates   Templates
	owner       string
	logger      *zap.Logger
}

// NewMessageService creates a new MessageService. owner is the name the
// contact email is addressed to.
func NewMessageService(messageRepo repositories.MessageRepository, sender mailer.Sender, templates Templates, owner string, logger *zap.Logger) *MessageService {
	if templates.Reply == "" {
		templates.Reply = templates.Contact
	}
	return &MessageService{
		messageRepo: messageRepo,
		sender:      sender,
		templates:   templates,
		owner:       owner,
		logger:      logger.Named("messages"),
	}
}

// Submit handles a contact form: the message is emailed to the owner and,
// once delivered, kept in the inbox. Delivery failures are not retried and
// leave the inbox untouched.
func (s *MessageService) Submit(ctx context.Context, message *models.Message) error {
	message.ID = 0
	message.Read = false
	message.Date = time.Time{}
	message.BeforeCreate()
	if err := message.Validate(); err != nil {
		return invalid("message", err)
	}

	err := s.sender.Send(ctx, s.templates.Contact, map[string]string{
		"from_name":  message.Name,
		"from_email": message.Email,
		"subject":    message.Subject,
		"message":    message.Body,
		"to_name":    s.owner,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}

	if err := s.messageRepo.Create(message); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	s.logger.Info("Contact message received", zap.Int("id", message.ID))
	return nil
}

// ListMessages returns the inbox, newest first
func (s *MessageService) ListMessages() ([]*models.Message, error) {
	messages, err := s.messageRepo.List()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].Date.Equal(messages[j].Date) {
			return messages[i].ID > messages[j].ID
		}
		return messages[i].Date.After(messages[j].Date)
	})
	return messages, nil
}

func (s *MessageService) GetMessage(id int) (*models.Message, error) {
	return s.messageRepo.GetByID(id)
}

// MarkRead flags a message as read and returns it.
func (s *MessageService) MarkRead(id int) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if message.Read {
		return message, nil
	}
	message.Read = true
	if err := s.messageRepo.Update(message); err != nil {
		return nil, err
	}
	return message, nil
}

// Reply emails body to the sender of message id. Replies are not stored.
func (s *MessageService) Reply(ctx context.Context, id int, body string) error {
	body = strings.TrimSpace(body)
	if body == "" {
		return ErrEmptyReply
	}
	message, err := s.messageRepo.GetByID(id)
	if err != nil {
		return err
	}

	subject := message.Subject
	if subject == "" {
		subject = "your message"
	}
	err = s.sender.Send(ctx, s.templates.Reply, map[string]string{
		"to_name":   message.Name,
		"to_email":  message.Email,
		"from_name": s.owner,
		"subject":   "Re: " + subject,
		"message":   body,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrDelivery, err)
	}
	s.logger.Info("Reply sent", zap.Int("id", id))
	return nil
}

// DeleteMessage removes exactly the message with the given ID
func (s *MessageService) DeleteMessage(id int) error {
	return s.messageRepo.Delete(id)
}
