package envelope

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jc-juarez/lazarus-statusgen/pkg/codes"
)

const Version = "2026-10"

const (
	KindAppended    = "status_code.appended"
	KindRegenerated = "registry.regenerated"
)

// Code is the wire form of a status code.
type Code struct {
	Name     string `json:"name"`
	Internal string `json:"internal"`
	HTTP     int    `json:"http"`
	Desc     string `json:"desc,omitempty"`
}

// RegistryEvent announces a registry change to downstream consumers.
type RegistryEvent struct {
	ID        string            `json:"id"`
	Version   string            `json:"version"`
	Kind      string            `json:"kind"`
	Registry  string            `json:"registry,omitempty"`
	Code      *Code             `json:"code,omitempty"`
	Count     int               `json:"count"`
	Digest    string            `json:"digest"`
	CreatedAt time.Time         `json:"created_at"`
	Trace     map[string]string `json:"trace,omitempty"`
	Signature string            `json:"signature,omitempty"`
}

// CodeOf converts sc to its wire form.
func CodeOf(sc codes.StatusCode) *Code {
	return &Code{Name: sc.Name, Internal: sc.Hex(), HTTP: sc.HTTP, Desc: sc.Desc}
}

// Digest returns the hex sha256 of the registry file bytes.
func Digest(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// New builds a normalized event for the registry snapshot raw.
func New(kind string, raw []byte, count int, sc *codes.StatusCode) *RegistryEvent {
	evt := &RegistryEvent{Kind: kind, Count: count, Digest: Digest(raw)}
	if sc != nil {
		evt.Code = CodeOf(*sc)
	}
	Normalize(evt)
	return evt
}

// Normalize fills default fields.
func Normalize(evt *RegistryEvent) {
	if evt == nil {
		return
	}
	if evt.Version == "" {
		evt.Version = Version
	}
	if evt.ID == "" {
		evt.ID = uuid.NewString()
	}
	if evt.CreatedAt.IsZero() {
		evt.CreatedAt = time.Now().UTC()
	}
}

// Validate checks an event before it is published or after it is received.
func Validate(evt *RegistryEvent) error {
	if evt == nil {
		return errors.New("event is nil")
	}
	switch evt.Kind {
	case KindAppended:
		if evt.Code == nil || strings.TrimSpace(evt.Code.Name) == "" {
			return errors.New("appended event requires code")
		}
	case KindRegenerated:
	default:
		return errors.New("unknown event kind " + evt.Kind)
	}
	if _, err := uuid.Parse(evt.ID); err != nil {
		return errors.New("event id must be a uuid")
	}
	if len(evt.Digest) != sha256.Size*2 {
		return errors.New("digest must be a hex sha256")
	}
	return nil
}

// StampTrace stores propagated trace context on the event.
func StampTrace(evt *RegistryEvent, carrier map[string]string) {
	if evt == nil || len(carrier) == 0 {
		return
	}
	if evt.Trace == nil {
		evt.Trace = map[string]string{}
	}
	for k, v := range carrier {
		evt.Trace[k] = v
	}
}

// Key is the partition key: the code name for appends, the kind otherwise.
func (e *RegistryEvent) Key() string {
	if e.Code != nil {
		return e.Code.Name
	}
	return e.Kind
}

// Encode marshals the event to JSON.
func Encode(evt *RegistryEvent) ([]byte, error) {
	return json.Marshal(evt)
}

// Decode unmarshals and validates an event.
func Decode(data []byte) (*RegistryEvent, error) {
	var evt RegistryEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		return nil, err
	}
	if err := Validate(&evt); err != nil {
		return nil, err
	}
	return &evt, nil
}
