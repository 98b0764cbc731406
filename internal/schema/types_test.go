package schema

import "testing"

func TestRelationKindRoundTrip(t *testing.T) {
	for _, kind := range []RelationKind{OneToOne, OneToMany, ManyToOne, ManyToMany} {
		parsed, err := ParseRelationKind(kind.String())
		if err != nil {
			t.Errorf("ParseRelationKind(%q): %v", kind.String(), err)
		}
		if parsed != kind {
			t.Errorf("round trip %v -> %v", kind, parsed)
		}
	}

	if _, err := ParseRelationKind("BelongsTo"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestRelationKindInverse(t *testing.T) {
	cases := map[RelationKind]RelationKind{
		OneToOne:   OneToOne,
		OneToMany:  ManyToOne,
		ManyToOne:  OneToMany,
		ManyToMany: ManyToMany,
	}
	for kind, want := range cases {
		if got := kind.Inverse(); got != want {
			t.Errorf("%v.Inverse() = %v, want %v", kind, got, want)
		}
	}
}

func TestBlueprintLookups(t *testing.T) {
	bp := &Blueprint{Modules: []*Module{{Name: "User"}, {Name: "Post"}}}

	names := bp.ModuleNames()
	if len(names) != 2 || names[0] != "User" || names[1] != "Post" {
		t.Errorf("ModuleNames() = %v", names)
	}

	if bp.Module("Post") == nil {
		t.Error("Module(Post) should be found")
	}
	if bp.Module("Comment") != nil {
		t.Error("Module(Comment) should be nil")
	}
}
