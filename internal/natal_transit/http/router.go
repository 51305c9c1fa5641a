package http

import "github.com/gin-gonic/gin"

// Register registers the chart and profile routes. limit, when non-nil,
// guards every route that runs a calculation.
func (h *Handler) Register(rg *gin.RouterGroup, limit gin.HandlerFunc) {
	calc := func(handler gin.HandlerFunc) []gin.HandlerFunc {
		if limit == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{limit, handler}
	}

	rg.POST("/charts/calculate", calc(h.Calculate)...)
	rg.GET("/charts/calculations/:id", h.GetReceipt)

	if h.profiles == nil {
		return
	}
	rg.POST("/profiles", h.CreateProfile)
	rg.GET("/profiles", h.ListProfiles)
	rg.GET("/profiles/:id", h.GetProfile)
	rg.DELETE("/profiles/:id", h.DeleteProfile)
	rg.POST("/profiles/:id/transits", calc(h.ProfileTransits)...)
	if h.digests != nil {
		rg.GET("/profiles/:id/digests/stream", h.StreamDigests)
	}
}
