package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownEntity is matched by errors.Is against UnknownEntityReferenceError
	ErrUnknownEntity = errors.New("unknown entity reference")

	// ErrRelationConflict is matched by errors.Is against RelationConflictError
	ErrRelationConflict = errors.New("conflicting relation declarations")

	// ErrDuplicateModule is returned when two modules share a name
	ErrDuplicateModule = errors.New("duplicate module name")
)

// UnknownEntityReferenceError reports a relation whose target module is not
// declared anywhere in the blueprint.
type UnknownEntityReferenceError struct {
	Module    string   // module declaring the relation
	Field     string   // relation field on the declaring module
	Reference string   // the dangling target name
	Declared  []string // every declared module name, for suggestions
}

func (e *UnknownEntityReferenceError) Error() string {
	return fmt.Sprintf("module %s: relation %q references unknown module %q",
		e.Module, e.Field, e.Reference)
}

func (e *UnknownEntityReferenceError) Is(target error) bool {
	return target == ErrUnknownEntity
}

// RelationConflictError reports two explicit relation declarations between the
// same module pair whose kinds cannot both be true, or a true duplicate edge.
type RelationConflictError struct {
	ModuleA string
	ModuleB string
	KindA   RelationKind
	KindB   RelationKind
	FieldA  string
	FieldB  string
}

func (e *RelationConflictError) Error() string {
	if e.ModuleA == e.ModuleB && e.FieldA == e.FieldB {
		return fmt.Sprintf("modules %s and %s declare duplicate %s relations on field %q",
			e.ModuleA, e.ModuleB, e.KindA, e.FieldA)
	}
	return fmt.Sprintf("modules %s and %s declare incompatible relation kinds: %s (%s.%s) vs %s (%s.%s)",
		e.ModuleA, e.ModuleB,
		e.KindA, e.ModuleA, e.FieldA,
		e.KindB, e.ModuleB, e.FieldB)
}

func (e *RelationConflictError) Is(target error) bool {
	return target == ErrRelationConflict
}
