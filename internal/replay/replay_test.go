package replay_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/delve/internal/game/actor"
	"github.com/cory-johannsen/delve/internal/game/condition"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/item"
	"github.com/cory-johannsen/delve/internal/game/species"
	"github.com/cory-johannsen/delve/internal/replay"
)

const koboldYAML = `
id: kobold
name: kobold
level: 2
max_hp: 10
size: small
frequency: 2
attacks:
  - kind: claw
    damage: phys
    dice: 1d8
`

const acidBlobYAML = `
id: acid_blob
name: acid blob
level: 1
max_hp: 6
size: tiny
frequency: 2
attacks:
  - kind: none
    damage: acid
    dice: 1d8
`

const duelYAML = `
id: kobold_duel
seed: 7
actors:
  - id: kobold
    kind: monster
    species: kobold
  - id: hero
    kind: hero
    name: Aria
rounds:
  - attacker: kobold
    defender: hero
`

const brawlYAML = `
id: brawl
seed: 11
actors:
  - id: hero
    kind: hero
    name: Aria
    max_hp: 30
    attacks:
      - kind: weapon
        damage: phys
        dice: 1d4
    inventory:
      - item: long_sword
        quantity: 1
        wield: true
  - id: kobold
    kind: monster
    species: kobold
    x: 1
    y: 1
  - id: blob
    kind: monster
    species: acid_blob
    x: 0
    y: 1
rounds:
  - attacker: kobold
    defender: hero
  - attacker: hero
    defender: blob
  - attacker: hero
    defender: kobold
    repeat: 6
  - attacker: kobold
    defender: hero
    repeat: 6
`

func newRunner(t testing.TB) *replay.Runner {
	t.Helper()
	var tmpls []*species.Template
	for _, src := range []string{koboldYAML, acidBlobYAML} {
		tmpl, err := species.LoadTemplateFromBytes([]byte(src))
		require.NoError(t, err)
		tmpls = append(tmpls, tmpl)
	}
	sp, err := species.NewRegistry(tmpls...)
	require.NoError(t, err)

	items := item.NewRegistry()
	require.NoError(t, items.Register(&item.Def{ID: "long_sword", Name: "long sword", Class: item.ClassWeapon, Material: item.MaterialIron, Damage: "1d8"}))
	require.NoError(t, items.Register(&item.Def{ID: "gold", Name: "gold piece", Class: item.ClassGold, Material: item.MaterialGold, Stackable: true}))
	return replay.NewRunner(sp, items, zap.NewNop())
}

func parse(t testing.TB, src string) *replay.Scenario {
	t.Helper()
	sc, err := replay.ParseScenario([]byte(src))
	require.NoError(t, err)
	return sc
}

func TestRunner_Run_ScriptedHit(t *testing.T) {
	r := newRunner(t)
	src := dice.NewScriptedSource(14, 4)

	sess, err := r.Run(context.Background(), parse(t, duelYAML), src)
	require.NoError(t, err)

	require.Len(t, sess.Rounds, 1)
	rd := sess.Rounds[0]
	assert.Equal(t, "hit|turn_consumed", rd.Outcome)
	assert.Equal(t, 2, rd.Draws)
	assert.Equal(t, actor.DefaultMaxHP-5, rd.DefenderHP)
	assert.Equal(t, "kobold_duel", sess.ScenarioID)
	assert.Equal(t, int64(7), sess.Seed)
	assert.NotEmpty(t, sess.ID)
	assert.Zero(t, src.Remaining())

	require.Len(t, sess.Final, 2)
	assert.Equal(t, "kobold", sess.Final[0].ID)
	assert.Equal(t, "hero", sess.Final[1].ID)
	assert.Equal(t, 7, sess.Final[1].HP)
	assert.Contains(t, sess.Messages, "kobold hits Aria.")
}

func TestRunner_Run_Deterministic(t *testing.T) {
	r := newRunner(t)
	sc := parse(t, brawlYAML)
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		a, err := r.Run(context.Background(), sc, dice.NewSeededSource(seed))
		require.NoError(rt, err)
		b, err := r.Run(context.Background(), sc, dice.NewSeededSource(seed))
		require.NoError(rt, err)

		assert.Nil(rt, replay.Diff(a, b))
		assert.Equal(rt, a.Draws, b.Draws)
		assert.Equal(rt, a.Messages, b.Messages)
		assert.LessOrEqual(rt, a.Deaths, 3)
		for _, st := range a.Final {
			assert.GreaterOrEqual(rt, st.HP, 0)
		}
	})
}

func TestRunner_Verify(t *testing.T) {
	r := newRunner(t)
	sc := parse(t, brawlYAML)
	ref, err := r.Run(context.Background(), sc, dice.NewSeededSource(sc.Seed))
	require.NoError(t, err)
	require.Greater(t, len(ref.Draws), 3)

	t.Run("matching trace", func(t *testing.T) {
		sess, err := r.Verify(context.Background(), sc, ref.Trace())
		require.NoError(t, err)
		assert.Nil(t, replay.Diff(ref, sess))
	})

	t.Run("changed argument", func(t *testing.T) {
		trace := ref.Trace()
		trace.Draws[2].Arg++
		_, err := r.Verify(context.Background(), sc, trace)
		var div *dice.DivergenceError
		require.ErrorAs(t, err, &div)
		assert.Equal(t, 2, div.Index)
	})

	t.Run("truncated trace", func(t *testing.T) {
		trace := ref.Trace()
		trace.Draws = trace.Draws[:3]
		_, err := r.Verify(context.Background(), sc, trace)
		require.ErrorIs(t, err, dice.ErrTraceExhausted)
		var div *dice.DivergenceError
		require.ErrorAs(t, err, &div)
		assert.Equal(t, 3, div.Index)
	})

	t.Run("extra draws", func(t *testing.T) {
		trace := ref.Trace()
		trace.Draws = append(trace.Draws, dice.Draw{Seq: len(trace.Draws), Func: dice.FuncRn2, Arg: 6})
		_, err := r.Verify(context.Background(), sc, trace)
		assert.True(t, errors.Is(err, dice.ErrTraceUnconsumed))
	})
}

func TestRunner_Overrides(t *testing.T) {
	r := newRunner(t)
	sc := parse(t, `
id: overrides
actors:
  - id: kobold
    kind: monster
    species: kobold
    level: 5
    hp: 3
    ac: 4
    resists: [fire]
    status:
      - flag: confused
        turns: 4
  - id: hero
    kind: hero
    level: 0
rounds: []
`)
	sess, err := r.Run(context.Background(), sc, dice.NewScriptedSource())
	require.NoError(t, err)
	require.Len(t, sess.Final, 2)
	k := sess.Final[0]
	assert.Equal(t, 3, k.HP)
	assert.Equal(t, 10, k.MaxHP)
	assert.Equal(t, 5, k.Level)
	assert.Equal(t, []string{condition.Confused.String()}, k.Status)
	assert.Equal(t, 1, sess.Final[1].Level)
	assert.Empty(t, sess.Draws)
}

func TestRunner_Errors(t *testing.T) {
	r := newRunner(t)

	_, err := r.Run(context.Background(), parse(t, `
id: unknown
actors:
  - id: m
    kind: monster
    species: dragon
`), dice.NewScriptedSource())
	assert.ErrorContains(t, err, "dragon")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx, parse(t, duelYAML), dice.NewScriptedSource(14, 4))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestScenario_Validate(t *testing.T) {
	cases := map[string]string{
		"no id":            "actors: [{id: a, kind: hero}]\n",
		"no actors":        "id: x\n",
		"bad kind":         "id: x\nactors: [{id: a, kind: ghost}]\n",
		"monster species":  "id: x\nactors: [{id: a, kind: monster}]\n",
		"duplicate":        "id: x\nactors: [{id: a, kind: hero}, {id: a, kind: monster, species: s}]\n",
		"two heroes":       "id: x\nactors: [{id: a, kind: hero}, {id: b, kind: hero}]\n",
		"unknown attacker": "id: x\nactors: [{id: a, kind: hero}]\nrounds: [{attacker: z, defender: a}]\n",
		"self attack":      "id: x\nactors: [{id: a, kind: hero}]\nrounds: [{attacker: a, defender: a}]\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := replay.ParseScenario([]byte(src))
			assert.Error(t, err)
		})
	}
}

func TestLoadScenarios(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(duelYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(brawlYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	scs, err := replay.LoadScenarios(dir)
	require.NoError(t, err)
	require.Len(t, scs, 2)
	assert.Equal(t, "brawl", scs[0].ID)
	assert.Equal(t, "kobold_duel", scs[1].ID)
}

func TestSessionFile(t *testing.T) {
	r := newRunner(t)
	sc := parse(t, brawlYAML)
	sess, err := r.Run(context.Background(), sc, dice.NewSeededSource(sc.Seed))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "session.yaml")
	require.NoError(t, replay.WriteSession(path, sess))
	got, err := replay.ReadSession(path)
	require.NoError(t, err)

	assert.Equal(t, sess.Trace(), got.Trace())
	assert.Nil(t, replay.Diff(sess, got))

	_, err = r.Verify(context.Background(), sc, got.Trace())
	assert.NoError(t, err)
}

func TestDiff(t *testing.T) {
	base := &replay.Session{
		Rounds: []replay.RoundResult{
			{Index: 0, Attacker: "a", Defender: "b", Outcome: "hit|turn_consumed", Draws: 2, DefenderHP: 5},
			{Index: 1, Attacker: "b", Defender: "a", Outcome: "missed|turn_consumed", Draws: 1, DefenderHP: 9},
		},
		Final: []replay.ActorState{{ID: "a", HP: 9}, {ID: "b", HP: 5}},
	}
	clone := func() *replay.Session {
		c := *base
		c.Rounds = append([]replay.RoundResult(nil), base.Rounds...)
		c.Final = append([]replay.ActorState(nil), base.Final...)
		return &c
	}

	assert.Nil(t, replay.Diff(base, clone()))

	got := clone()
	got.Rounds[1].Outcome = "hit|turn_consumed"
	m := replay.Diff(base, got)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Round)
	assert.Equal(t, "outcome", m.Field)
	assert.Equal(t, "round 1 outcome: want missed|turn_consumed, got hit|turn_consumed", m.String())

	got = clone()
	got.Rounds = got.Rounds[:1]
	m = replay.Diff(base, got)
	require.NotNil(t, m)
	assert.Equal(t, "rounds", m.Field)

	got = clone()
	got.Final[1].Dead = true
	m = replay.Diff(base, got)
	require.NotNil(t, m)
	assert.Equal(t, -1, m.Round)
	assert.Equal(t, "actor b", m.Field)
}

func TestNewSource(t *testing.T) {
	_, seed, err := replay.NewSource("seeded", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), seed)

	_, seed, err = replay.NewSource("seeded", 0)
	require.NoError(t, err)
	assert.NotZero(t, seed)

	_, _, err = replay.NewSource("loaded", 1)
	assert.Error(t, err)
}

func TestShippedScenarios(t *testing.T) {
	root := filepath.Join("..", "..", "content")
	defs, err := item.LoadDefs(filepath.Join(root, "items"))
	require.NoError(t, err)
	items := item.NewRegistry()
	for _, d := range defs {
		require.NoError(t, items.Register(d))
	}
	tmpls, err := species.LoadTemplates(filepath.Join(root, "species"))
	require.NoError(t, err)
	sp, err := species.NewRegistry(tmpls...)
	require.NoError(t, err)
	r := replay.NewRunner(sp, items, zap.NewNop())

	scs, err := replay.LoadScenarios(filepath.Join(root, "scenarios"))
	require.NoError(t, err)
	require.NotEmpty(t, scs)
	for _, sc := range scs {
		t.Run(sc.ID, func(t *testing.T) {
			sess, err := r.Run(context.Background(), sc, dice.NewSeededSource(sc.Seed))
			require.NoError(t, err)
			assert.NotEmpty(t, sess.Draws)

			again, err := r.Verify(context.Background(), sc, sess.Trace())
			require.NoError(t, err)
			assert.Nil(t, replay.Diff(sess, again))
		})
	}
}
