package npc_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/rogue/internal/game/npc"
)

const orcYAML = `
id: orc
name: Orc
description: A hulking brute.
health: 500
armor: 4
damage: 55
taunts:
  - "Grraah!"
taunt_chance: 0.5
`

func TestLoadKindFromBytes_Valid(t *testing.T) {
	k, err := npc.LoadKindFromBytes([]byte(orcYAML))
	require.NoError(t, err)
	assert.Equal(t, "orc", k.ID)
	assert.Equal(t, "Orc", k.Name)
	assert.Equal(t, 500, k.Health)
	assert.Equal(t, 4, k.Armor)
	assert.Equal(t, 55, k.Damage)
	assert.Equal(t, []string{"Grraah!"}, k.Taunts)
	assert.InDelta(t, 0.5, k.TauntChance, 1e-9)
}

func TestLoadKindFromBytes_Invalid(t *testing.T) {
	cases := map[string]string{
		"missing id":     "name: Orc\nhealth: 1\n",
		"missing name":   "id: orc\nhealth: 1\n",
		"zero health":    "id: orc\nname: Orc\nhealth: 0\n",
		"negative armor": "id: orc\nname: Orc\nhealth: 1\narmor: -1\n",
		"negative dmg":   "id: orc\nname: Orc\nhealth: 1\ndamage: -1\n",
		"bad chance":     "id: orc\nname: Orc\nhealth: 1\ntaunt_chance: 2\n",
		"bad yaml":       "id: [orc",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := npc.LoadKindFromBytes([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestLoadKinds_SortedAndDeduplicated(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "orc.yaml"), []byte(orcYAML), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "goblin.yaml"),
		[]byte("id: goblin\nname: Goblin\nhealth: 300\narmor: 2\ndamage: 40\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644))

	kinds, err := npc.LoadKinds(dir)
	require.NoError(t, err)
	require.Len(t, kinds, 2)
	assert.Equal(t, "goblin", kinds[0].ID)
	assert.Equal(t, "orc", kinds[1].ID)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "orc2.yaml"), []byte(orcYAML), 0644))
	_, err = npc.LoadKinds(dir)
	assert.Error(t, err)
}

func TestLoadKinds_MissingDir(t *testing.T) {
	_, err := npc.LoadKinds("/nonexistent/enemies")
	assert.Error(t, err)
}
