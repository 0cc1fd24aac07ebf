package region

import (
	"testing"

	apperrors "gotix/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvinces(t *testing.T) {
	provinces := Provinces()
	assert.NotEmpty(t, provinces)

	p, err := ProvinceByID(31)
	require.NoError(t, err)
	assert.Equal(t, "DKI Jakarta", p.Name)

	_, err = ProvinceByID(999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRegionHierarchy(t *testing.T) {
	regencies, err := RegenciesByProvince(32)
	require.NoError(t, err)
	require.NotEmpty(t, regencies)
	for _, r := range regencies {
		assert.Equal(t, int64(32), r.ProvinceID)
	}

	districts, err := DistrictsByRegency(3273)
	require.NoError(t, err)
	require.NotEmpty(t, districts)
	for _, d := range districts {
		assert.Equal(t, int64(3273), d.RegencyID)
	}

	villages, err := VillagesByDistrict(327301)
	require.NoError(t, err)
	require.NotEmpty(t, villages)
	for _, v := range villages {
		assert.Equal(t, int64(327301), v.DistrictID)
	}

	_, err = RegenciesByProvince(999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = DistrictsByRegency(9999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = VillagesByDistrict(999999)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSearchByCity(t *testing.T) {
	results := SearchByCity("bandung")
	require.Len(t, results, 2)
	for _, r := range results {
		assert.Contains(t, r.Name, "Bandung")
	}

	assert.NotEmpty(t, SearchByCity("  Jakarta "))
	assert.Empty(t, SearchByCity("atlantis"))
	assert.Empty(t, SearchByCity(""))
	assert.Empty(t, SearchByCity("   "))
}
