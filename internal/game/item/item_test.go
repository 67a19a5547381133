package item_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/item"
)

func longSword() *item.Def {
	return &item.Def{ID: "long_sword", Name: "long sword", Class: item.ClassWeapon, Material: item.MaterialIron, Weight: 40, Damage: "1d8"}
}

func plateMail() *item.Def {
	return &item.Def{ID: "plate_mail", Name: "plate mail", Class: item.ClassArmor, Material: item.MaterialIron, Weight: 450, Slot: item.SlotBody, ACBonus: 7}
}

func TestDef_Validate_Weapon(t *testing.T) {
	d := longSword()
	require.NoError(t, d.Validate())
	assert.Equal(t, 1, d.DamageDice().Count)
	assert.Equal(t, 8, d.DamageDice().Sides)
}

func TestDef_Validate_Errors(t *testing.T) {
	cases := map[string]*item.Def{
		"empty id":     {Name: "x", Class: item.ClassTool},
		"bad class":    {ID: "x", Name: "x", Class: "widget"},
		"bad damage":   {ID: "x", Name: "x", Class: item.ClassWeapon, Damage: "banana"},
		"bad slot":     {ID: "x", Name: "x", Class: item.ClassArmor, Slot: "tail"},
		"bad material": {ID: "x", Name: "x", Class: item.ClassTool, Material: "cheese"},
		"neg weight":   {ID: "x", Name: "x", Class: item.ClassTool, Weight: -1},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, d.Validate())
		})
	}
}

func TestParseDef(t *testing.T) {
	d, err := item.ParseDef([]byte(`
id: leather_armor
name: leather armor
class: armor
material: leather
weight: 150
slot: body
ac_bonus: 2
`))
	require.NoError(t, err)
	assert.Equal(t, item.SlotBody, d.Slot)
	assert.Equal(t, 2, d.ACBonus)
}

func TestLoadDefs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("id: b\nname: bee\nclass: tool\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yml"), []byte("id: a\nname: ay\nclass: gold\nstackable: true\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	defs, err := item.LoadDefs(dir)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "a", defs[0].ID)
	assert.Equal(t, "b", defs[1].ID)
}

func TestLoadDefs_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("id: ''\n"), 0o644))
	_, err := item.LoadDefs(dir)
	assert.Error(t, err)
}

func TestErode(t *testing.T) {
	sword := &item.Instance{Def: longSword()}
	assert.Equal(t, item.ErodeImmune, sword.Erode(item.ErodeBurn))
	assert.Equal(t, item.Eroded, sword.Erode(item.ErodeRust))
	assert.Equal(t, item.Eroded, sword.Erode(item.ErodeCorrode))
	assert.Equal(t, 1, sword.Eroded)
	assert.Equal(t, 1, sword.Eroded2)

	sword.Erodeproof = true
	assert.Equal(t, item.ErodeProtected, sword.Erode(item.ErodeRust))
}

func TestErode_CapsAtMax(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		inst := &item.Instance{Def: longSword()}
		for i := 0; i < n; i++ {
			inst.Erode(item.ErodeRust)
		}
		assert.LessOrEqual(rt, inst.Eroded, item.MaxErosion)
		if n > item.MaxErosion {
			assert.Equal(rt, item.ErodeMaxed, inst.Erode(item.ErodeRust))
		}
	})
}

func TestArmorClass_ErosionNeverBelowEnchantment(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		def := plateMail()
		def.ACBonus = rapid.IntRange(0, 7).Draw(rt, "ac")
		inst := &item.Instance{
			Def:         def,
			Enchantment: rapid.IntRange(-3, 5).Draw(rt, "spe"),
			Eroded:      rapid.IntRange(0, item.MaxErosion).Draw(rt, "e1"),
			Eroded2:     rapid.IntRange(0, item.MaxErosion).Draw(rt, "e2"),
		}
		assert.GreaterOrEqual(rt, inst.ArmorClass(), inst.Enchantment)
		assert.LessOrEqual(rt, inst.ArmorClass(), def.ACBonus+inst.Enchantment)
	})
}

func TestInstance_Name(t *testing.T) {
	inst := &item.Instance{Def: longSword(), Enchantment: 1, Eroded: 2}
	assert.Equal(t, "very rusty +1 long sword", inst.Name())

	corpse := &item.Instance{Def: &item.Def{ID: "corpse", Name: "corpse", Class: item.ClassCorpse}, CorpseOf: "jackal"}
	assert.Equal(t, "jackal corpse", corpse.Name())
}

func TestRegistry(t *testing.T) {
	reg := item.NewRegistry()
	require.NoError(t, reg.Register(plateMail()))
	require.NoError(t, reg.Register(longSword()))
	assert.Error(t, reg.Register(longSword()))
	assert.Error(t, reg.Register(nil))

	d, ok := reg.Def("long_sword")
	require.True(t, ok)
	assert.Equal(t, "long sword", d.Name)
	all := reg.All()
	require.Len(t, all, 2)
	assert.Equal(t, "long_sword", all[0].ID)
	assert.Equal(t, 2, reg.Len())
}
