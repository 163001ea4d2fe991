package verify

import (
	"context"
	"fmt"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Invoker sends a two-turn vision request to the judging model and returns
// the raw response content.
type Invoker interface {
	Invoke(ctx context.Context, system, human string, images []string) (string, error)
}

// AgentInvoker is the production Invoker. Agents are created per call; they
// are cheap and this keeps the invoker safe for concurrent use across a
// batch chunk.
type AgentInvoker struct {
	agent gaconfig.AgentConfig
}

// NewAgentInvoker creates an Invoker for the given agent configuration.
func NewAgentInvoker(cfg gaconfig.AgentConfig) *AgentInvoker {
	return &AgentInvoker{agent: cfg}
}

func (i *AgentInvoker) Invoke(ctx context.Context, system, human string, images []string) (string, error) {
	a, err := agent.New(&i.agent)
	if err != nil {
		return "", fmt.Errorf("create agent: %w", err)
	}

	prompt := system + "\n\n" + human
	resp, err := a.Vision(ctx, prompt, images)
	if err != nil {
		return "", fmt.Errorf("vision call: %w", err)
	}

	return resp.Content(), nil
}
