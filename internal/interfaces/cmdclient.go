package interfaces

import "context"

type CommandClient interface {
	RunCommand(ctx context.Context, command string, arguments []string) (string, error)
	Username() string
}
