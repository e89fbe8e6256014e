package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const InitialGreeting = "Ready for clinical support. \n\nSelect an action or describe the patient case."

type ChatMessage struct {
	Role          string `json:"role"`
	Content       string `json:"content"`
	HasAttachment bool   `json:"hasAttachment,omitempty"`
}

const (
	RoleUser = "user"
	RoleAI   = "ai"
)

// ChatLog keeps the assistant conversation in a local JSON file. The file is
// only written once the conversation goes beyond the greeting.
type ChatLog struct {
	mu       sync.Mutex
	path     string
	messages []ChatMessage
}

func greeting() []ChatMessage {
	return []ChatMessage{{Role: RoleAI, Content: InitialGreeting}}
}

func OpenChatLog(path string) (*ChatLog, error) {
	l := &ChatLog{path: path, messages: greeting()}

	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read chat log: %w", err)
	}

	var saved []ChatMessage
	if err := json.Unmarshal(raw, &saved); err != nil {
		return nil, fmt.Errorf("decode chat log: %w", err)
	}
	if len(saved) > 0 {
		l.messages = saved
	}
	return l, nil
}

func (l *ChatLog) Messages() []ChatMessage {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]ChatMessage, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *ChatLog) Append(msgs ...ChatMessage) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = append(l.messages, msgs...)
	if len(l.messages) <= 1 {
		return nil
	}
	return l.save()
}

// Clear deletes the file and resets the conversation to the greeting.
func (l *ChatLog) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.messages = greeting()
	if err := os.Remove(l.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove chat log: %w", err)
	}
	return nil
}

func (l *ChatLog) save() error {
	raw, err := json.Marshal(l.messages)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(l.path), 0o700); err != nil {
		return fmt.Errorf("create chat log dir: %w", err)
	}

	tmp := l.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("write chat log: %w", err)
	}
	return os.Rename(tmp, l.path)
}
