package ruleset_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/rogue/internal/game/ruleset"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadClasses_ParsesYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "knight.yaml"), `
id: knight
name: "Knight"
description: "Heavy armor, steady blade."
bonuses:
  health: 250
  stamina: 20
  armor: 7
  damage: 100
`)
	classes, err := ruleset.LoadClasses(dir)
	require.NoError(t, err)
	require.Len(t, classes, 1)
	c := classes[0]
	assert.Equal(t, "knight", c.ID)
	assert.Equal(t, "Knight", c.Name)
	assert.Equal(t, ruleset.Bonuses{Health: 250, Stamina: 20, Armor: 7, Damage: 100}, c.Bonuses)
}

func TestLoadClasses_SortedByID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "id: samurai\nname: Samurai\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "id: barbarian\nname: Barbarian\n")
	writeFile(t, filepath.Join(dir, "c.yml"), "id: knight\nname: Knight\n")
	writeFile(t, filepath.Join(dir, "README.md"), "ignored")

	classes, err := ruleset.LoadClasses(dir)
	require.NoError(t, err)
	require.Len(t, classes, 3)
	assert.Equal(t, "barbarian", classes[0].ID)
	assert.Equal(t, "knight", classes[1].ID)
	assert.Equal(t, "samurai", classes[2].ID)
}

func TestLoadClasses_EmptyDir(t *testing.T) {
	classes, err := ruleset.LoadClasses(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, classes)
}

func TestLoadClasses_MissingDir(t *testing.T) {
	_, err := ruleset.LoadClasses("/nonexistent/classes")
	assert.Error(t, err)
}

func TestLoadClasses_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.yaml"), "id: [unclosed")
	_, err := ruleset.LoadClasses(dir)
	assert.Error(t, err)
}

func TestLoadClasses_Duplicate(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "id: knight\nname: Knight\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "id: knight\nname: Other\n")
	_, err := ruleset.LoadClasses(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate class ID")
}

func TestClass_Validate(t *testing.T) {
	assert.Error(t, (&ruleset.Class{Name: "No ID"}).Validate())
	assert.Error(t, (&ruleset.Class{ID: "x"}).Validate())
	assert.Error(t, (&ruleset.Class{ID: "x", Name: "X", Bonuses: ruleset.Bonuses{Armor: -1}}).Validate())
	assert.NoError(t, (&ruleset.Class{ID: "x", Name: "X"}).Validate())
}

func TestFindClass(t *testing.T) {
	classes := []*ruleset.Class{{ID: "knight", Name: "Knight"}, {ID: "samurai", Name: "Samurai"}}
	c, ok := ruleset.FindClass(classes, "samurai")
	require.True(t, ok)
	assert.Equal(t, "Samurai", c.Name)
	_, ok = ruleset.FindClass(classes, "wizard")
	assert.False(t, ok)
}

func TestClass_Property_NonNegativeBonusesValidate(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		c := ruleset.Class{
			ID:   rapid.StringMatching(`[a-z]{1,10}`).Draw(rt, "id"),
			Name: rapid.StringMatching(`[A-Z][a-z]{0,10}`).Draw(rt, "name"),
			Bonuses: ruleset.Bonuses{
				Health:  rapid.IntRange(0, 1000).Draw(rt, "health"),
				Stamina: rapid.IntRange(0, 1000).Draw(rt, "stamina"),
				Armor:   rapid.IntRange(0, 100).Draw(rt, "armor"),
				Damage:  rapid.IntRange(0, 1000).Draw(rt, "damage"),
			},
		}
		assert.NoError(rt, c.Validate())
	})
}
