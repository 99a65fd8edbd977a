package namespace

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mwantia/ossfm/data"
	"github.com/mwantia/ossfm/data/errors"
)

// Kind names the high-level mutation a plan implements.
type Kind string

const (
	KindRename       Kind = "rename"
	KindMove         Kind = "move"
	KindSoftDelete   Kind = "soft_delete"
	KindRestore      Kind = "restore"
	KindPurge        Kind = "purge"
	KindCreateFolder Kind = "create_folder"
)

// Op is a single remote store call within a plan.
type Op string

const (
	OpCopy   Op = "copy"
	OpDelete Op = "delete"
	OpPut    Op = "put"
)

// Step is one remote store call. Key is the object written or deleted; Source is
// only set for copies.
type Step struct {
	Op     Op     `json:"op"`
	Key    string `json:"key"`
	Source string `json:"source,omitempty"`
}

func (s Step) String() string {
	if s.Op == OpCopy {
		return fmt.Sprintf("%s %s -> %s", s.Op, s.Source, s.Key)
	}
	return fmt.Sprintf("%s %s", s.Op, s.Key)
}

// Plan is an ordered, non-atomic list of steps. A plan without steps is a no-op.
type Plan struct {
	ID          uuid.UUID `json:"id"`
	Kind        Kind      `json:"kind"`
	Source      string    `json:"source"`
	Destination string    `json:"destination"`
	Steps       []Step    `json:"steps"`
}

func (p *Plan) IsEmpty() bool {
	return p == nil || len(p.Steps) == 0
}

// HasCopy reports whether any step copies an object.
func (p *Plan) HasCopy() bool {
	if p == nil {
		return false
	}
	for _, step := range p.Steps {
		if step.Op == OpCopy {
			return true
		}
	}
	return false
}

func (p *Plan) String() string {
	if p.IsEmpty() {
		return fmt.Sprintf("%s (no-op)", p.Kind)
	}

	steps := make([]string, 0, len(p.Steps))
	for _, step := range p.Steps {
		steps = append(steps, step.String())
	}
	return fmt.Sprintf("%s [%s]", p.Kind, strings.Join(steps, "; "))
}

func newPlan(kind Kind, source, destination string, steps ...Step) *Plan {
	return &Plan{
		ID:          uuid.Must(uuid.NewV7()),
		Kind:        kind,
		Source:      source,
		Destination: destination,
		Steps:       steps,
	}
}

// copyThenDelete builds the two-step relocation shared by rename, move, soft-delete and
// restore. Equal keys produce an empty plan.
func copyThenDelete(kind Kind, source, destination string) *Plan {
	if source == destination {
		return newPlan(kind, source, destination)
	}

	return newPlan(kind, source, destination,
		Step{Op: OpCopy, Key: destination, Source: source},
		Step{Op: OpDelete, Key: source},
	)
}

func validateFileKey(op Kind, key string) error {
	if key == "" {
		return errors.Invalid("empty key for", string(op))
	}
	if data.IsFolderKey(key) {
		return errors.Unsupported(nil, string(op)+" folder", key)
	}
	return nil
}

func validateBaseName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.Invalid("empty name", name)
	}
	if strings.Contains(name, data.Delimiter) {
		return errors.Invalid("name must not contain a slash", name)
	}
	return nil
}

// PlanRename renames a file within its folder.
func PlanRename(oldKey, newBaseName string) (*Plan, error) {
	if err := validateFileKey(KindRename, oldKey); err != nil {
		return nil, err
	}
	if err := validateBaseName(newBaseName); err != nil {
		return nil, err
	}

	newKey := data.JoinRelative(data.DirName(oldKey), newBaseName)
	return copyThenDelete(KindRename, oldKey, newKey), nil
}

// PlanMove moves a file into destinationFolder, keeping its base name.
func PlanMove(sourceKey, destinationFolder string) (*Plan, error) {
	if err := validateFileKey(KindMove, sourceKey); err != nil {
		return nil, err
	}

	newKey := data.JoinRelative(data.NormalizePrefix(destinationFolder), data.BaseName(sourceKey))
	return copyThenDelete(KindMove, sourceKey, newKey), nil
}

// PlanSoftDelete moves key below trashPath, mirroring its position relative to rootPath.
// Keys outside rootPath are placed below trashPath with their full key.
func PlanSoftDelete(key, rootPath, trashPath string) (*Plan, error) {
	if err := validateFileKey(KindSoftDelete, key); err != nil {
		return nil, err
	}

	rootPath = data.NormalizePrefix(rootPath)
	trashPath = data.NormalizePrefix(trashPath)
	if trashPath == "" {
		return nil, errors.Invalid("trash path not configured for", key)
	}
	if strings.HasPrefix(key, trashPath) {
		return nil, errors.Invalid("object already in trash", key)
	}

	var destination string
	if data.HasPrefix(key, rootPath) {
		destination = data.JoinRelative(trashPath, data.StripPrefix(key, rootPath))
	} else {
		destination = data.JoinRelative(trashPath, key)
	}

	return copyThenDelete(KindSoftDelete, key, destination), nil
}

// PlanRestore is the inverse of PlanSoftDelete. Keys outside trashPath are restored
// directly below rootPath by base name.
func PlanRestore(key, rootPath, trashPath string) (*Plan, error) {
	if err := validateFileKey(KindRestore, key); err != nil {
		return nil, err
	}

	rootPath = data.NormalizePrefix(rootPath)
	trashPath = data.NormalizePrefix(trashPath)

	var destination string
	if data.HasPrefix(key, trashPath) {
		destination = data.JoinRelative(rootPath, data.StripPrefix(key, trashPath))
	} else {
		destination = data.JoinRelative(rootPath, data.BaseName(key))
	}

	return copyThenDelete(KindRestore, key, destination), nil
}

// PlanPurge permanently deletes a key that lives in the trash.
func PlanPurge(key, trashPath string) (*Plan, error) {
	if err := validateFileKey(KindPurge, key); err != nil {
		return nil, err
	}

	trashPath = data.NormalizePrefix(trashPath)
	if trashPath == "" || !strings.HasPrefix(key, trashPath) {
		return nil, errors.Invalid("object is not in trash", key)
	}

	return newPlan(KindPurge, key, "", Step{Op: OpDelete, Key: key}), nil
}

// PlanCreateFolder writes an empty directory marker named name below path.
func PlanCreateFolder(path, name string) (*Plan, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), data.Delimiter)
	if err := validateBaseName(name); err != nil {
		return nil, err
	}

	key := data.JoinRelative(data.NormalizePrefix(path), name+data.Delimiter)
	return newPlan(KindCreateFolder, "", key, Step{Op: OpPut, Key: key}), nil
}
