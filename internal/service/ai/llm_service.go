package ai

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/glucoamigo/backend/internal/config"
	"github.com/glucoamigo/backend/internal/model/chat"
)

// Service runs the companion's conversation turns against the remote
// chat model. It satisfies the chat service's Responder interface.
type Service struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the model and the prompt chain from configuration.
func NewService(ctx context.Context, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{chain: runnable}, nil
}

// Respond sends the full ordered history, latest user turn included,
// and returns the raw reply text. The emotion tag is left in place for
// the caller to extract.
func (s *Service) Respond(ctx context.Context, history []chat.Message) (string, error) {
	input := map[string]any{
		"system":  systemInstruction,
		"history": buildHistory(history),
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run chat chain: %w", err)
	}

	log.Printf("[ai] generated response, turns=%d, length=%d", len(history), len(response.Content))
	return response.Content, nil
}

// buildHistory maps transcript messages onto model turns: user
// messages keep the user role, assistant messages become model turns.
func buildHistory(messages []chat.Message) []*schema.Message {
	history := make([]*schema.Message, 0, len(messages))
	for _, msg := range messages {
		switch msg.Sender {
		case chat.SenderUser:
			history = append(history, schema.UserMessage(msg.Text))
		case chat.SenderAssistant:
			history = append(history, schema.AssistantMessage(msg.Text, nil))
		}
	}
	return history
}
