package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// EmailLog é um log ordenado de envios de email simulados, persistido como um
// array JSON em arquivo. Cada append relê o arquivo inteiro e o regrava.
// Seguro apenas para um único processo; o mutex serializa escritores dentro dele.
type EmailLog struct {
	mu   sync.Mutex
	path string
}

// NewEmailLog cria um log apontando para o arquivo dado.
func NewEmailLog(path string) *EmailLog {
	return &EmailLog{path: path}
}

// Append acrescenta uma entrada ao final do log.
func (l *EmailLog) Append(entry map[string]interface{}) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.readAll()
	if err != nil {
		return err
	}
	entries = append(entries, entry)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("falha ao serializar log de emails: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("falha ao gravar log de emails: %w", err)
	}
	return nil
}

// ReadAll retorna todas as entradas do log, na ordem de gravação.
func (l *EmailLog) ReadAll() ([]map[string]interface{}, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.readAll()
}

// readAll lê o arquivo sem travar; um arquivo ausente ou corrompido
// é tratado como log vazio, como no comportamento original de append.
func (l *EmailLog) readAll() ([]map[string]interface{}, error) {
	data, err := os.ReadFile(l.path)
	if os.IsNotExist(err) {
		return []map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("falha ao ler log de emails: %w", err)
	}

	var entries []map[string]interface{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return []map[string]interface{}{}, nil
	}
	return entries, nil
}
