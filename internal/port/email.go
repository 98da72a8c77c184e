package port

import "context"

// EmailSender defines the contract for sending transactional emails.
type EmailSender interface {
	SendPasswordResetEmail(ctx context.Context, toEmail, toName, resetToken string) error
}
