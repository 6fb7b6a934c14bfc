package rest

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/premintlabs/premintpool/internal/domain"
	"github.com/premintlabs/premintpool/internal/store"
)

const MAX_PAGE_SIZE = 100

// ListPremintsQueryParams holds query parameters for GET /premints
type ListPremintsQueryParams struct {
	// Filters
	Kind        *string `form:"kind"`
	Signer      *string `form:"signer"`
	ChainID     *uint64 `form:"chain_id"`
	SeenOnChain *bool   `form:"seen_on_chain"`

	// Pagination
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// ParseListPremintsQuery parses query parameters for GET /premints
func ParseListPremintsQuery(c *gin.Context) (*ListPremintsQueryParams, error) {
	var params ListPremintsQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	// Signers are stored lowercased
	if params.Signer != nil {
		lowered := strings.ToLower(*params.Signer)
		params.Signer = &lowered
	}

	// Cap limits
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}
	if params.Limit < 0 {
		params.Limit = 0
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	return &params, nil
}

// ToFilter converts the parsed query parameters into a store filter
func (p *ListPremintsQueryParams) ToFilter() store.PremintQueryFilter {
	filter := store.PremintQueryFilter{
		Signer:      p.Signer,
		ChainID:     p.ChainID,
		SeenOnChain: p.SeenOnChain,
		Limit:       p.Limit,
		Offset:      p.Offset,
	}
	if p.Kind != nil {
		kind := domain.PremintKind(*p.Kind)
		filter.Kind = &kind
	}
	return filter
}
