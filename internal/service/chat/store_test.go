package chat

import (
	"testing"

	"github.com/glucoamigo/backend/internal/analysis/emotion"
	"github.com/glucoamigo/backend/internal/model/chat"
)

func TestStoreAppendUserMessageReturnsFullSequence(t *testing.T) {
	store := NewStore()

	first := store.AppendUserMessage("Hola")
	if len(first) != 1 || first[0].Text != "Hola" || first[0].Sender != chat.SenderUser {
		t.Fatalf("unexpected sequence: %+v", first)
	}

	second := store.AppendUserMessage("Tengo 180 de glucosa")
	if len(second) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(second))
	}
	if second[1].Text != "Tengo 180 de glucosa" {
		t.Fatalf("unexpected tail message: %+v", second[1])
	}
}

func TestStoreAppendAssistantMessagesPreservesOrder(t *testing.T) {
	store := NewStore()
	store.AppendUserMessage("Hola")

	appended := store.AppendAssistantMessages([]string{"Primera.", "¿Segunda?"})
	if len(appended) != 2 {
		t.Fatalf("expected 2 appended, got %d", len(appended))
	}

	messages := store.Messages()
	if len(messages) != 3 {
		t.Fatalf("expected 3 total, got %d", len(messages))
	}
	if messages[1].Text != "Primera." || messages[2].Text != "¿Segunda?" {
		t.Fatalf("order not preserved: %+v", messages)
	}
	for _, m := range appended {
		if m.Sender != chat.SenderAssistant {
			t.Fatalf("expected assistant sender, got %q", m.Sender)
		}
	}
}

func TestStoreMessageIDsAreUnique(t *testing.T) {
	store := NewStore()
	store.AppendUserMessage("uno")
	store.AppendAssistantMessages([]string{"dos", "tres"})
	store.AppendUserMessage("cuatro")

	seen := make(map[string]bool)
	for _, m := range store.Messages() {
		if m.ID == "" {
			t.Fatal("message id must not be empty")
		}
		if seen[m.ID] {
			t.Fatalf("duplicate id %s", m.ID)
		}
		seen[m.ID] = true
	}
}

func TestStoreReplaceAll(t *testing.T) {
	store := NewStore()
	store.AppendUserMessage("viejo")

	restored := []chat.Message{
		chat.NewUserMessage("Hola"),
		chat.NewAssistantMessage("Buenos días."),
	}
	store.ReplaceAll(restored, emotion.Feliz)

	messages := store.Messages()
	if len(messages) != 2 || messages[0].Text != "Hola" {
		t.Fatalf("replace did not take: %+v", messages)
	}
	if store.Emotion() != emotion.Feliz {
		t.Fatalf("emotion: got %q", store.Emotion())
	}
}

func TestStoreSetEmotionLastWriteWins(t *testing.T) {
	store := NewStore()
	if store.Emotion() != emotion.Neutral {
		t.Fatalf("initial emotion should be neutral, got %q", store.Emotion())
	}
	store.SetEmotion(emotion.Preocupado)
	store.SetEmotion(emotion.Triste)
	if store.Emotion() != emotion.Triste {
		t.Fatalf("emotion: got %q", store.Emotion())
	}
}

func TestStoreMessagesReturnsCopy(t *testing.T) {
	store := NewStore()
	store.AppendUserMessage("Hola")

	view := store.Messages()
	view[0].Text = "mutated"

	if store.Messages()[0].Text != "Hola" {
		t.Fatal("Messages must return a defensive copy")
	}
}
