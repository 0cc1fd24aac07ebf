package handlers

import (
	"net/http"

	"gotix/internal/region"

	"github.com/gin-gonic/gin"
)

// ListProvinces - GET /api/regions
func (h *Handlers) ListProvinces(c *gin.Context) {
	ok(c, http.StatusOK, "success get provinces", region.Provinces())
}

// GetProvince - GET /api/regions/:id/province
func (h *Handlers) GetProvince(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	province, err := region.ProvinceByID(id)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success get province", province)
}

// GetRegencies - GET /api/regions/:id/regency
func (h *Handlers) GetRegencies(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	regencies, err := region.RegenciesByProvince(id)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success get regencies", regencies)
}

// GetDistricts - GET /api/regions/:id/district
func (h *Handlers) GetDistricts(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	districts, err := region.DistrictsByRegency(id)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success get districts", districts)
}

// GetVillages - GET /api/regions/:id/village
func (h *Handlers) GetVillages(c *gin.Context) {
	id, valid := idParam(c)
	if !valid {
		return
	}

	villages, err := region.VillagesByDistrict(id)
	if err != nil {
		fail(c, err)
		return
	}

	ok(c, http.StatusOK, "success get villages", villages)
}

// SearchRegions - GET /api/regions-search?name=
func (h *Handlers) SearchRegions(c *gin.Context) {
	ok(c, http.StatusOK, "success search regions", region.SearchByCity(c.Query("name")))
}
