package pagecontent

import "github.com/goliatone/go-page-content/internal/runtimeconfig"

var (
	ErrTableNameRequired        = runtimeconfig.ErrTableNameRequired
	ErrCacheTTLInvalid          = runtimeconfig.ErrCacheTTLInvalid
	ErrCacheKeyPrefixRequired   = runtimeconfig.ErrCacheKeyPrefixRequired
	ErrDefaultLocaleRequired    = runtimeconfig.ErrDefaultLocaleRequired
	ErrDefaultLocaleUnavailable = runtimeconfig.ErrDefaultLocaleUnavailable
	ErrLocaleCodeInvalid        = runtimeconfig.ErrLocaleCodeInvalid
	ErrContentTypesRequired     = runtimeconfig.ErrContentTypesRequired
	ErrPaginationInvalid        = runtimeconfig.ErrPaginationInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config           = runtimeconfig.Config
	DefaultsConfig   = runtimeconfig.DefaultsConfig
	CacheConfig      = runtimeconfig.CacheConfig
	LocaleConfig     = runtimeconfig.LocaleConfig
	PaginationConfig = runtimeconfig.PaginationConfig
	ValidationConfig = runtimeconfig.ValidationConfig
	LoggingConfig    = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
