package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/salinity-watch/internal/domain/station"
)

const stationClaimsKey = "station_claims"

func setStationClaims(c *gin.Context, claims station.Claims) {
	c.Set(stationClaimsKey, claims)
}

func getStationClaims(c *gin.Context) (station.Claims, bool) {
	value, ok := c.Get(stationClaimsKey)
	if !ok {
		return station.Claims{}, false
	}
	claims, ok := value.(station.Claims)
	return claims, ok
}
