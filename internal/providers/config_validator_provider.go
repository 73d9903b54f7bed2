package providers

import (
	"fmt"

	"github.com/gookit/validate"
	"github.com/naka-gawa/github-profile-stats/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid configuration: %w", v.Errors)
	}
	if cv.conf.Database.Backend != "sqlite" && cv.conf.Database.DSN == "" {
		return fmt.Errorf("invalid configuration: database.dsn is required for %s", cv.conf.Database.Backend)
	}
	if cv.conf.Cache.Enabled && cv.conf.Cache.TTL <= 0 {
		return fmt.Errorf("invalid configuration: cache.ttl must be positive when cache is enabled")
	}
	return nil
}
