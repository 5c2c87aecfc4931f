// Package jsonstore mirrors the store to a single JSON snapshot file.
// Single file, human-readable, portable. No locking: two concurrently
// running instances overwrite each other, last writer wins.
package jsonstore

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/idilsaglam/todoapp/internal/model"
	"github.com/idilsaglam/todoapp/internal/store"
)

//go:embed snapshot.schema.json
var snapshotSchema string

var schema = jsonschema.MustCompileString("snapshot.schema.json", snapshotSchema)

// Bridge reads the snapshot once at startup and writes it after every store
// transition. Read failures degrade to empty state; write failures are
// logged and dropped, never surfaced.
type Bridge struct {
	path string
	log  *zap.Logger
}

// New returns a bridge for the snapshot at path.
func New(path string, log *zap.Logger) *Bridge {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bridge{path: path, log: log}
}

// Path returns the snapshot file location.
func (b *Bridge) Path() string { return b.path }

// Attach subscribes the bridge to s so every transition is written through.
func (b *Bridge) Attach(s *store.Store) {
	s.Subscribe(b.Save)
}

// Preflight checks the stored entry for JSON well-formedness and erases it
// when it cannot be parsed. It runs before Load and stays a separate,
// order-first step even though Load tolerates parse failures on its own.
func (b *Bridge) Preflight() {
	raw, err := os.ReadFile(b.path)
	if err != nil {
		return
	}
	if !json.Valid(raw) {
		b.log.Warn("clearing corrupted state file", zap.String("path", b.path))
		b.Erase()
	}
}

// Load reads the snapshot. An absent file yields empty state; a parse
// failure logs a warning and yields empty state. A snapshot whose todos
// sub-object lacks the per-user mapping shape is the pre-namespacing format:
// auth is kept, todos are replaced with an empty mapping. The old flat list
// is NOT carried forward — that matches the historical behavior, and the
// data-discarding case logs its own warning so it is distinguishable from
// "no prior data".
func (b *Bridge) Load() store.State {
	empty := store.State{Todos: model.TodosState{UserTodos: map[string][]model.Todo{}}}

	raw, err := os.ReadFile(b.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			b.log.Warn("read state file", zap.String("path", b.path), zap.Error(err))
		}
		return empty
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		b.log.Warn("discarding unparseable state file", zap.String("path", b.path), zap.Error(err))
		return empty
	}

	if err := schema.Validate(doc); err != nil {
		// Legacy (or otherwise malformed) snapshot shape. Salvage auth,
		// reset the todos mapping.
		b.log.Warn("legacy snapshot shape: previous todos discarded by migration",
			zap.String("path", b.path), zap.Error(err))
		var legacy struct {
			Auth model.AuthState `json:"auth"`
		}
		_ = json.Unmarshal(raw, &legacy)
		return store.State{Auth: legacy.Auth, Todos: model.TodosState{UserTodos: map[string][]model.Todo{}}}
	}

	var snap store.State
	if err := json.Unmarshal(raw, &snap); err != nil {
		b.log.Warn("discarding undecodable state file", zap.String("path", b.path), zap.Error(err))
		return empty
	}
	if snap.Todos.UserTodos == nil {
		snap.Todos.UserTodos = map[string][]model.Todo{}
	}
	return snap
}

// Save serializes st to the snapshot file. Failures are logged at debug and
// otherwise ignored; there is no retry.
func (b *Bridge) Save(st store.State) {
	raw, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		b.log.Debug("marshal state", zap.Error(err))
		return
	}
	if err := os.MkdirAll(filepath.Dir(b.path), 0o700); err != nil {
		b.log.Debug("mkdir state dir", zap.Error(err))
		return
	}
	if err := os.WriteFile(b.path, raw, 0o600); err != nil {
		b.log.Debug("write state file", zap.Error(err))
	}
}

// Erase removes the snapshot file. Called on logout and on corrupt content.
func (b *Bridge) Erase() {
	if err := os.Remove(b.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		b.log.Debug(fmt.Sprintf("remove %s", b.path), zap.Error(err))
	}
}
