package servicegroup

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

func TestMatchTiers(t *testing.T) {
	t.Parallel()

	t.Run("substring selects Electricity", func(t *testing.T) {
		i, ok := Match("Electricity Services", DefaultTemplates, nil)
		require.True(t, ok)
		require.Equal(t, "Electricity", DefaultTemplates[i].Name)

		_, exact := ExactMatch("Electricity Services", DefaultTemplates, nil)
		require.False(t, exact)
	})

	t.Run("exact wins over later tiers", func(t *testing.T) {
		templates := []Template{{Name: "Funding Partners"}, {Name: "Funding"}}
		i, ok := Match("funding", templates, nil)
		require.True(t, ok)
		require.Equal(t, 1, i)

		i, ok = Match("Funding", DefaultTemplates, nil)
		require.True(t, ok)
		require.Equal(t, "Funding", DefaultTemplates[i].Name)
	})

	t.Run("reverse containment", func(t *testing.T) {
		i, ok := SubstringMatch("Waste", DefaultTemplates, nil)
		require.True(t, ok)
		require.Equal(t, "Waste Management", DefaultTemplates[i].Name)
	})

	t.Run("shared token", func(t *testing.T) {
		i, ok := Match("Estate Security Patrol", []Template{{Name: "Water"}, {Name: "Security Guards"}}, nil)
		require.True(t, ok)
		require.Equal(t, 1, i)
	})

	t.Run("short tokens ignored", func(t *testing.T) {
		_, ok := SharedTokenMatch("TV of sorts", []Template{{Name: "TV box"}}, nil)
		require.False(t, ok)
	})

	t.Run("claimed templates skipped", func(t *testing.T) {
		templates := []Template{{Name: "Water"}, {Name: "Water"}}
		i, ok := Match("water", templates, map[int]bool{0: true})
		require.True(t, ok)
		require.Equal(t, 1, i)

		_, ok = Match("water", templates, map[int]bool{0: true, 1: true})
		require.False(t, ok)
	})

	t.Run("no match", func(t *testing.T) {
		_, ok := Match("Gym", DefaultTemplates, nil)
		require.False(t, ok)
		_, ok = Match("", DefaultTemplates, nil)
		require.False(t, ok)
	})
}

func TestAssign(t *testing.T) {
	t.Parallel()

	categories := []string{"Gym", "Electricity Services", "Water", "Laundry", "Security"}
	got, overflow := Assign(categories, DefaultTemplates)
	require.Empty(t, overflow)
	require.Len(t, got, len(DefaultTemplates))

	require.Equal(t, "Electricity", got[0].Title)
	require.Equal(t, "Electricity Services", got[0].Category)
	require.True(t, got[0].Matched)

	require.Equal(t, "Water", got[1].Category)

	// Unmatched categories fill never-claimed slots in encounter order
	require.Equal(t, "Gym", got[2].Title)
	require.False(t, got[2].Matched)
	require.Equal(t, "Security", got[3].Category)
	require.True(t, got[3].Matched)
	require.Equal(t, "Laundry", got[4].Title)

	require.Equal(t, "Internet", got[5].Title)
	require.Empty(t, got[5].Category)
}

func TestAssignOverflow(t *testing.T) {
	t.Parallel()

	templates := []Template{{Name: "Water"}}
	got, overflow := Assign([]string{"Gym", "Pool", "Water Supply"}, templates)
	require.Equal(t, "Water Supply", got[0].Category)
	require.Equal(t, []string{"Gym", "Pool"}, overflow)
}

func TestGreedyIsOrderDependent(t *testing.T) {
	t.Parallel()

	templates := []Template{{Name: "Water"}, {Name: "Waste Water"}}

	got, _ := Assign([]string{"Waste Water Treatment", "Water"}, templates)
	require.Equal(t, "Waste Water Treatment", got[0].Category)
	require.Equal(t, "Water", got[1].Category)
}

func TestBuild(t *testing.T) {
	t.Parallel()

	services := []zamanisdk.Service{
		{ID: "1", Name: "Prepaid meter", Category: "Electricity Services"},
		{ID: "2", Name: "Borehole", Category: "Water"},
		{ID: "3", Name: "Token top-up", Category: "Electricity Services"},
		{ID: "4", Name: "Mystery", Category: ""},
	}

	order, groups := GroupByCategory(services)
	require.Equal(t, []string{"Electricity Services", "Water", OtherCategory}, order)
	require.Len(t, groups["Electricity Services"], 2)

	cards, overflow := Build(services, DefaultTemplates)
	require.Empty(t, overflow)
	require.Len(t, cards[0].Services, 2)
	require.Equal(t, OtherCategory, cards[2].Title)
	require.Len(t, cards[2].Services, 1)
	require.NotNil(t, cards[5].Services)
	require.Empty(t, cards[5].Services)
}
