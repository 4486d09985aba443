package config

import (
	"github.com/spf13/viper"

	"keepersecurity.com/ksm-github-sync/github"
)

func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("github.token", "")
	v.SetDefault("github.base_url", github.DefaultBaseURL)
	v.SetDefault("github.user_agent", github.DefaultUserAgent)
	v.SetDefault("github.page_size", github.DefaultPageSize)
	v.SetDefault("github.page_delay", github.DefaultPageDelay)
	v.SetDefault("github.fail_on_http_error", false)
	v.SetDefault("sync.org", "")
	v.SetDefault("sync.retries", 0)
	v.SetDefault("sync.retry_delay", "5s")
	v.SetDefault("store.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 3)
}
