package cards

import (
	"errors"
	"testing"

	"github.com/nathoo/cardfight/types"
)

func TestNew_RejectsNegativeCost(t *testing.T) {
	if _, err := New("Bad", Skill, -1, "", nil); !errors.Is(err, types.ErrInvalidArgument) {
		t.Fatalf("err = %v, want ErrInvalidArgument", err)
	}
}

func TestCopy_FreshIDSameFields(t *testing.T) {
	calls := 0
	eff := func(Table, Target) error { calls++; return nil }
	c, err := New("Strike", Attack, 1, "Deal 6 damage", eff)
	if err != nil {
		t.Fatal(err)
	}
	c.Upgrade()

	cp := c.Copy()
	if cp.ID() == c.ID() {
		t.Error("copy kept the original id")
	}
	if cp.Name() != c.Name() || cp.Type() != c.Type() || cp.Cost() != c.Cost() ||
		cp.Description() != c.Description() || cp.Upgraded() != c.Upgraded() {
		t.Errorf("copy fields differ: %+v vs %+v", cp, c)
	}

	if err := cp.Play(nil, nil); err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("copied effect not shared: calls = %d", calls)
	}
}

func TestSetCost(t *testing.T) {
	c, _ := New("Defend", Skill, 1, "", nil)
	if err := c.SetCost(0); err != nil {
		t.Fatalf("SetCost(0): %v", err)
	}
	if err := c.SetCost(-2); !errors.Is(err, types.ErrInvalidArgument) {
		t.Fatalf("SetCost(-2) err = %v", err)
	}
	if c.Cost() != 0 {
		t.Errorf("cost = %d after rejected update, want 0", c.Cost())
	}
}

func TestParseType(t *testing.T) {
	tests := []struct {
		in      string
		want    Type
		wantErr bool
	}{
		{"attack", Attack, false},
		{"SKILL", Skill, false},
		{"Power", Power, false},
		{"curse", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseType(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseType(%q) err = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseType(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
