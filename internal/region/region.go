// Package region serves the static Indonesian administrative-area lookup
// used when composing event addresses. The dataset is embedded; there is no
// database table behind it.
package region

import (
	"strings"

	apperrors "gotix/internal/errors"
)

type Province struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Regency struct {
	ID         int64  `json:"id"`
	ProvinceID int64  `json:"provinceId"`
	Name       string `json:"name"`
}

type District struct {
	ID        int64  `json:"id"`
	RegencyID int64  `json:"regencyId"`
	Name      string `json:"name"`
}

type Village struct {
	ID         int64  `json:"id"`
	DistrictID int64  `json:"districtId"`
	Name       string `json:"name"`
}

// Provinces returns every province in the dataset
func Provinces() []Province {
	out := make([]Province, len(provinces))
	copy(out, provinces)
	return out
}

// ProvinceByID returns one province
func ProvinceByID(id int64) (*Province, error) {
	for _, p := range provinces {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

// RegenciesByProvince lists the regencies of a province
func RegenciesByProvince(provinceID int64) ([]Regency, error) {
	if _, err := ProvinceByID(provinceID); err != nil {
		return nil, err
	}
	var out []Regency
	for _, r := range regencies {
		if r.ProvinceID == provinceID {
			out = append(out, r)
		}
	}
	return out, nil
}

// DistrictsByRegency lists the districts of a regency
func DistrictsByRegency(regencyID int64) ([]District, error) {
	found := false
	for _, r := range regencies {
		if r.ID == regencyID {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	var out []District
	for _, d := range districts {
		if d.RegencyID == regencyID {
			out = append(out, d)
		}
	}
	return out, nil
}

// VillagesByDistrict lists the villages of a district
func VillagesByDistrict(districtID int64) ([]Village, error) {
	found := false
	for _, d := range districts {
		if d.ID == districtID {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.ErrNotFound
	}
	var out []Village
	for _, v := range villages {
		if v.DistrictID == districtID {
			out = append(out, v)
		}
	}
	return out, nil
}

// SearchByCity matches regencies by a case-insensitive substring of their name
func SearchByCity(name string) []Regency {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil
	}
	var out []Regency
	for _, r := range regencies {
		if strings.Contains(strings.ToLower(r.Name), name) {
			out = append(out, r)
		}
	}
	return out
}
