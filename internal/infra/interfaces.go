package infra

import "context"

type SMSClientInterface interface {
	Send(ctx context.Context, phone, message string) error
}

var _ SMSClientInterface = (*SMSClient)(nil)
