package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriggerRuleFor(t *testing.T) {
	testCases := []struct {
		name    string
		isOk    bool
		isError bool
		want    TriggerRule
	}{
		{name: "ok and error path", isOk: true, isError: true, want: TriggerRuleDummy},
		{name: "ok path only", isOk: true, isError: false, want: TriggerRuleAllSuccess},
		{name: "error path only", isOk: false, isError: true, want: TriggerRuleOneFailed},
		{name: "unclassified", isOk: false, isError: false, want: TriggerRuleDummy},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TriggerRuleFor(tc.isOk, tc.isError))
		})
	}
}

func TestNew(t *testing.T) {
	tk := New("a", "dummy.tpl", nil)
	assert.Equal(t, Task{TaskID: "a", TemplateName: "dummy.tpl", TriggerRule: TriggerRuleDummy}, tk)
}

func TestWithTriggerRule(t *testing.T) {
	orig := New("a", "ssh.tpl", map[string]any{"host": "example.com"})
	updated := orig.WithTriggerRule(TriggerRuleOneFailed)

	assert.Equal(t, TriggerRuleDummy, orig.TriggerRule, "original task must not change")
	assert.Equal(t, TriggerRuleOneFailed, updated.TriggerRule)
	assert.Equal(t, orig.TemplateParams, updated.TemplateParams)
}

func TestRelationSet(t *testing.T) {
	t.Run("identical edges collapse", func(t *testing.T) {
		s := NewRelationSet()
		s.Add(Relation{From: "a", To: "b"})
		s.Add(Relation{From: "a", To: "b"})
		assert.Equal(t, 1, s.Len())
	})

	t.Run("error flag is part of identity", func(t *testing.T) {
		s := NewRelationSet(
			Relation{From: "a", To: "b"},
			Relation{From: "a", To: "b", IsError: true},
		)
		assert.Equal(t, 2, s.Len())
		assert.True(t, s.Has(Relation{From: "a", To: "b", IsError: true}))
	})

	t.Run("remove where", func(t *testing.T) {
		s := NewRelationSet(
			Relation{From: "a", To: "kill"},
			Relation{From: "b", To: "kill", IsError: true},
			Relation{From: "a", To: "b"},
		)
		removed := s.RemoveWhere(func(r Relation) bool { return r.To == "kill" })
		assert.Equal(t, 2, removed)
		require.Equal(t, 1, s.Len())
		assert.True(t, s.Has(Relation{From: "a", To: "b"}))
	})

	t.Run("sorted is deterministic", func(t *testing.T) {
		s := NewRelationSet(
			Relation{From: "b", To: "c"},
			Relation{From: "a", To: "c", IsError: true},
			Relation{From: "a", To: "c"},
			Relation{From: "a", To: "b"},
		)
		assert.Equal(t, []Relation{
			{From: "a", To: "b"},
			{From: "a", To: "c"},
			{From: "a", To: "c", IsError: true},
			{From: "b", To: "c"},
		}, s.Sorted())
	})
}

func TestRelationString(t *testing.T) {
	assert.Equal(t, "a --> b", Relation{From: "a", To: "b"}.String())
	assert.Equal(t, "a -x-> b", Relation{From: "a", To: "b", IsError: true}.String())
}
