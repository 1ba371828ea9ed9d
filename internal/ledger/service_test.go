package ledger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/gem-gacha/internal/gacha"
	"github.com/xtding233/gem-gacha/internal/game"
)

// scriptRNG replays floats and ints in order, cycling when exhausted.
type scriptRNG struct {
	floats []float64
	ints   []int
	fi, ii int
}

func (s *scriptRNG) Float64() float64 {
	if len(s.floats) == 0 {
		return 0.99
	}
	v := s.floats[s.fi%len(s.floats)]
	s.fi++
	return v
}

func (s *scriptRNG) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[s.ii%len(s.ints)]
	s.ii++
	return v % n
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("user-%d", n)
	}
}

func newTestService(t *testing.T, rng gacha.RandomSource) *Service {
	t.Helper()
	cat, err := game.NewLoader("").Load()
	require.NoError(t, err)
	return NewService(NewMemoryStore(), game.Static(cat), WithRNG(rng), WithIDGenerator(seqIDs()))
}

// grant puts gems straight into an account for tests that don't care how they got there.
func grant(t *testing.T, s *Service, userID string, gems ...int) {
	t.Helper()
	_, err := s.store.Update(userID, func(a *Account) error {
		for _, g := range gems {
			a.addGem(g)
		}
		return nil
	})
	require.NoError(t, err)
}

func setBalance(t *testing.T, s *Service, userID string, points, prisms int64) {
	t.Helper()
	_, err := s.store.Update(userID, func(a *Account) error {
		a.Points, a.Prisms = points, prisms
		return nil
	})
	require.NoError(t, err)
}

func TestLoginCreatesFreshAccount(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(1))

	id, created := s.Login("")
	assert.True(t, created)
	assert.Equal(t, "user-1", id)

	acct, err := s.GameData(id)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acct.Points)
	assert.Equal(t, int64(10), acct.Prisms)
	assert.Empty(t, acct.Inventory)
	assert.Empty(t, acct.EquippedGems)
	assert.Equal(t, map[string]bool{"multi": false, "chorus": false, "lux": false}, acct.Volumes)
}

func TestLoginReusesKnownID(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(1))
	id, _ := s.Login("")

	again, created := s.Login(id)
	assert.False(t, created)
	assert.Equal(t, id, again)

	other, created := s.Login("stranger")
	assert.True(t, created)
	assert.NotEqual(t, "stranger", other)
	assert.Equal(t, 2, s.Stats().Accounts)
}

func TestLoginDefaultIDsAreUUIDs(t *testing.T) {
	cat, err := game.NewLoader("").Load()
	require.NoError(t, err)
	s := NewService(NewMemoryStore(), game.Static(cat))
	a, _ := s.Login("")
	b, _ := s.Login("")
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}

func TestUnknownUser(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(1))

	_, err := s.GameData("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.EarnPoints("ghost")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.DrawGacha("ghost", "beginner", 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.BuyVolume("ghost", "lux")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.EquipGem("ghost", 1, ActionEquip)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ExtractGem("ghost", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEarnPoints(t *testing.T) {
	// IntN(50) -> 49 gives the max of 59; Float64 0.05 < 0.10 grants a prism
	s := newTestService(t, &scriptRNG{floats: []float64{0.05, 0.5}, ints: []int{49, 0}})
	id, _ := s.Login("")

	res, err := s.EarnPoints(id)
	require.NoError(t, err)
	assert.Equal(t, EarnResult{EarnedPoints: 59, PrismsEarned: 1, NewPoints: 1059, NewPrisms: 11}, res)

	res, err = s.EarnPoints(id)
	require.NoError(t, err)
	assert.Equal(t, EarnResult{EarnedPoints: 10, PrismsEarned: 0, NewPoints: 1069, NewPrisms: 11}, res)
}

func TestEarnPointsRange(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(11))
	id, _ := s.Login("")
	prev := int64(1000)
	for i := 0; i < 500; i++ {
		res, err := s.EarnPoints(id)
		require.NoError(t, err)
		require.GreaterOrEqual(t, res.EarnedPoints, int64(10))
		require.LessOrEqual(t, res.EarnedPoints, int64(59))
		require.Equal(t, prev+res.EarnedPoints, res.NewPoints)
		prev = res.NewPoints
	}
}

func TestDrawGachaDebitsOnceAndFillsInventory(t *testing.T) {
	// 0.5 * 100 = 50 -> rare for premium; ints pick gem 4, 5, 6 in turn
	s := newTestService(t, &scriptRNG{floats: []float64{0.5}, ints: []int{0, 1, 2}})
	id, _ := s.Login("")
	setBalance(t, s, id, 0, 100)

	res, err := s.DrawGacha(id, "premium", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(10), res.NewPrisms)
	assert.Equal(t, int64(0), res.NewPoints)
	require.Len(t, res.Results, 3)
	assert.Equal(t, DrawnGem{GemID: 4, Grade: gacha.GradeRare, GradeName: "희귀", Name: "Topaz", Glyph: "💛"}, res.Results[0])
	assert.Equal(t, map[int]int{4: 1, 5: 1, 6: 1}, res.NewInventory)
	assert.Equal(t, int64(3), s.Stats().Draws)
	assert.Equal(t, int64(90), s.Stats().PrismsSpent)
}

func TestDrawGachaInsufficientFundsIsAtomic(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(3))
	id, _ := s.Login("")
	grant(t, s, id, 2)
	before, err := s.GameData(id)
	require.NoError(t, err)

	// 10 prisms buy two normal draws, not three
	_, err = s.DrawGacha(id, "normal", 3)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	_, err = s.DrawGacha(id, "luxury", 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	// over the per-request cap
	_, err = s.DrawGacha(id, "beginner", 101)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	after, err := s.GameData(id)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Zero(t, s.Stats().Draws)
}

func TestDrawGachaExactBalance(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(3))
	id, _ := s.Login("")
	res, err := s.DrawGacha(id, "normal", 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.NewPrisms)
	assert.Equal(t, int64(1000), res.NewPoints)

	res, err = s.DrawGacha(id, "beginner", 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.NewPoints)
	total := 0
	for _, n := range res.NewInventory {
		total += n
	}
	assert.Equal(t, 102, total)
}

func TestDrawGachaRejectsBadInput(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(3))
	id, _ := s.Login("")
	_, err := s.DrawGacha(id, "mythic", 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.DrawGacha(id, "beginner", 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = s.DrawGacha(id, "beginner", -4)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestBuyVolume(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(3))
	id, _ := s.Login("")

	_, err := s.BuyVolume(id, "multi")
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	_, err = s.BuyVolume(id, "mega")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	setBalance(t, s, id, 60000, 150)
	res, err := s.BuyVolume(id, "chorus")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), res.Points)
	assert.True(t, res.Volumes["chorus"])
	assert.False(t, res.Volumes["multi"])

	res, err = s.BuyVolume(id, "lux")
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.Prisms)

	setBalance(t, s, id, 60000, 150)
	_, err = s.BuyVolume(id, "chorus")
	assert.ErrorIs(t, err, ErrAlreadyOwned)
	acct, _ := s.GameData(id)
	assert.Equal(t, int64(60000), acct.Points)
}

func TestBuyVolumeAlreadyOwnedBeatsFunds(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(3))
	id, _ := s.Login("")
	setBalance(t, s, id, 0, 100)
	_, err := s.BuyVolume(id, "lux")
	require.NoError(t, err)
	_, err = s.BuyVolume(id, "lux")
	assert.ErrorIs(t, err, ErrAlreadyOwned)
}

func TestEquipGem(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(3))
	id, _ := s.Login("")

	_, err := s.EquipGem(id, 7, ActionEquip)
	assert.ErrorIs(t, err, ErrNotOwned)

	grant(t, s, id, 7, 8)
	eq, err := s.EquipGem(id, 7, ActionEquip)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, eq)

	_, err = s.EquipGem(id, 8, ActionEquip)
	assert.ErrorIs(t, err, ErrSlotFull)

	_, err = s.EquipGem(id, 8, ActionUnequip)
	assert.ErrorIs(t, err, ErrNotEquipped)

	_, err = s.EquipGem(id, 8, "polish")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	eq, err = s.EquipGem(id, 7, ActionUnequip)
	require.NoError(t, err)
	assert.Empty(t, eq)

	acct, _ := s.GameData(id)
	assert.Equal(t, 1, acct.Inventory[7], "equipping must not consume the gem")
}

func TestExtractGemRewards(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(3))
	id, _ := s.Login("")
	grant(t, s, id, 13, 9, 3, 3)

	tests := []struct {
		gem    int
		reward int64
		prisms int64
	}{
		{13, 10, 20},
		{9, 3, 23},
		{3, 1, 24},
	}
	for _, tt := range tests {
		res, err := s.ExtractGem(id, tt.gem)
		require.NoError(t, err)
		assert.Equal(t, tt.reward, res.PrismReward, "gem %d", tt.gem)
		assert.Equal(t, tt.prisms, res.NewPrisms, "gem %d", tt.gem)
	}

	acct, _ := s.GameData(id)
	assert.Equal(t, map[int]int{3: 1}, acct.Inventory, "zero counts must be removed")

	_, err := s.ExtractGem(id, 13)
	assert.ErrorIs(t, err, ErrNotOwned)
}

func TestExtractLastEquippedCopyUnequips(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(3))
	id, _ := s.Login("")
	grant(t, s, id, 10, 10)
	_, err := s.EquipGem(id, 10, ActionEquip)
	require.NoError(t, err)

	_, err = s.ExtractGem(id, 10)
	require.NoError(t, err)
	acct, _ := s.GameData(id)
	assert.Equal(t, []int{10}, acct.EquippedGems)

	_, err = s.ExtractGem(id, 10)
	require.NoError(t, err)
	acct, _ = s.GameData(id)
	assert.Empty(t, acct.EquippedGems)
	assert.Empty(t, acct.Inventory)
}

func TestInventoryRoundTrip(t *testing.T) {
	// always common gem 1
	s := newTestService(t, &scriptRNG{floats: []float64{0.99}, ints: []int{0}})
	id, _ := s.Login("")
	const n = 7
	for i := 0; i < n; i++ {
		_, err := s.DrawGacha(id, "beginner", 1)
		require.NoError(t, err)
	}
	for i := 0; i < 3; i++ {
		_, err := s.ExtractGem(id, 1)
		require.NoError(t, err)
	}
	acct, _ := s.GameData(id)
	assert.Equal(t, n-3, acct.Inventory[1])
}

func TestRandomOperationsKeepInvariants(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(2024))
	pick := gacha.NewSeededRNG(77)
	id, _ := s.Login("")
	drawTypes := []string{"beginner", "normal", "premium", "luxury"}
	volumes := []string{"multi", "chorus", "lux"}

	for i := 0; i < 3000; i++ {
		switch pick.IntN(6) {
		case 0:
			_, _ = s.EarnPoints(id)
		case 1:
			_, _ = s.DrawGacha(id, drawTypes[pick.IntN(4)], 1+pick.IntN(12))
		case 2:
			_, _ = s.BuyVolume(id, volumes[pick.IntN(3)])
		case 3:
			_, _ = s.EquipGem(id, 1+pick.IntN(15), ActionEquip)
		case 4:
			_, _ = s.EquipGem(id, 1+pick.IntN(15), ActionUnequip)
		case 5:
			_, _ = s.ExtractGem(id, 1+pick.IntN(15))
		}

		acct, err := s.GameData(id)
		require.NoError(t, err)
		require.GreaterOrEqual(t, acct.Points, int64(0))
		require.GreaterOrEqual(t, acct.Prisms, int64(0))
		require.LessOrEqual(t, len(acct.EquippedGems), 1)
		for gem, n := range acct.Inventory {
			require.Positive(t, n, "gem %d", gem)
		}
		for _, gem := range acct.EquippedGems {
			require.True(t, acct.Owns(gem), "equipped gem %d not owned", gem)
		}
	}
}

func TestConcurrentDrawsSerializePerAccount(t *testing.T) {
	s := newTestService(t, gacha.NewSeededRNG(9))
	id, _ := s.Login("")
	setBalance(t, s, id, 1000, 0)

	// 1000 points pay for exactly 100 beginner draws; 150 goroutines race for them
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 150; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.DrawGacha(id, "beginner", 1); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	acct, err := s.GameData(id)
	require.NoError(t, err)
	assert.Equal(t, 100, ok)
	assert.Equal(t, int64(0), acct.Points)
	total := 0
	for _, n := range acct.Inventory {
		total += n
	}
	assert.Equal(t, 100, total)
}

func newTwoSlotService(t *testing.T) *Service {
	t.Helper()
	p := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(p, []byte("equip_slots: 2\n"), 0o644))
	cat, err := game.NewLoader(p).Load()
	require.NoError(t, err)
	require.Equal(t, 2, cat.EquipSlots)
	return NewService(NewMemoryStore(), game.Static(cat), WithRNG(gacha.NewSeededRNG(3)), WithIDGenerator(seqIDs()))
}

func TestEquipNeedsAFreeCopy(t *testing.T) {
	s := newTwoSlotService(t)
	id, _ := s.Login("")
	grant(t, s, id, 7)

	eq, err := s.EquipGem(id, 7, ActionEquip)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, eq)

	_, err = s.EquipGem(id, 7, ActionEquip)
	assert.ErrorIs(t, err, ErrNotOwned)

	grant(t, s, id, 7)
	eq, err = s.EquipGem(id, 7, ActionEquip)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 7}, eq)
}

func TestExtractDropsEquipsBeyondRemainingCopies(t *testing.T) {
	s := newTwoSlotService(t)
	id, _ := s.Login("")
	grant(t, s, id, 7, 7, 8)
	for _, g := range []int{7, 7} {
		_, err := s.EquipGem(id, g, ActionEquip)
		require.NoError(t, err)
	}

	_, err := s.ExtractGem(id, 7)
	require.NoError(t, err)
	acct, _ := s.GameData(id)
	assert.Equal(t, []int{7}, acct.EquippedGems)
	assert.Equal(t, 1, acct.Inventory[7])

	_, err = s.ExtractGem(id, 7)
	require.NoError(t, err)
	acct, _ = s.GameData(id)
	assert.Empty(t, acct.EquippedGems)
	assert.Empty(t, acct.Inventory)
}

func TestMaxDrawCountIsClamped(t *testing.T) {
	cat, err := game.NewLoader("").Load()
	require.NoError(t, err)
	s := NewService(NewMemoryStore(), game.Static(cat), WithMaxDrawCount(1<<62))
	assert.Equal(t, MaxDrawCountLimit, s.maxDrawCount)

	id, _ := s.Login("")
	_, err = s.DrawGacha(id, "luxury", 1<<61)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	acct, _ := s.GameData(id)
	assert.Equal(t, int64(10), acct.Prisms)
}
