// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config binds the environment variables and config file keys
// shared by the site and content binaries, and turns them into the typed
// configs in pkg/types.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/folio/internal/host"
	"github.com/pdiddy/folio/internal/mirror"
	"github.com/pdiddy/folio/pkg/types"
)

// Name is the config file stem: ./folio.yaml or ~/.config/folio/config.yaml.
const Name = "folio"

// Keys.
const (
	KeySource     = "content.source"
	KeyBucket     = "content.bucket"
	KeyRegion     = "content.region"
	KeyContentDir = "content.dir"
	KeyMount      = "mount.point"
	KeyPasswdFile = "mount.passwd_file"
	KeyEditor     = "editor"
	KeyAuthor     = "author"
	KeyAddr       = "server.addr"
	KeyStaticDir  = "server.static_dir"
	KeySiteTitle  = "server.site_title"
	KeyRelated    = "server.related_limit"
	KeyLedger     = "sync.ledger"
	KeyLogLevel   = "log.level"
	KeyLogFormat  = "log.format"
)

// envBindings maps keys to their unprefixed environment variables.
var envBindings = map[string]string{
	KeySource:     "CONTENT_SOURCE",
	KeyBucket:     "S3_CONTENT_BUCKET",
	KeyRegion:     "AWS_REGION",
	KeyContentDir: "CONTENT_DIR",
	KeyMount:      "CONTENT_MOUNT",
	KeyPasswdFile: "S3FS_PASSWD_FILE",
	KeyEditor:     "EDITOR",
	KeyAuthor:     "CONTENT_AUTHOR",
	KeyAddr:       "SITE_ADDR",
	KeyStaticDir:  "SITE_STATIC_DIR",
	KeyLogLevel:   "LOG_LEVEL",
	KeyLogFormat:  "LOG_FORMAT",
}

// Init sets defaults and environment bindings on v and reads the config
// file: cfgFile when given, otherwise folio.yaml in the working directory
// or config.yaml in ~/.config/folio. It returns the file used, if any. A
// missing default config file is not an error.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	setDefaults(v)
	for key, env := range envBindings {
		// BindEnv only fails without a key.
		_ = v.BindEnv(key, env)
	}

	if cfgFile == "" {
		cfgFile = findConfigFile()
	}
	if cfgFile == "" {
		return "", nil
	}

	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return "", fmt.Errorf("reading config %s: %w", cfgFile, err)
	}
	return v.ConfigFileUsed(), nil
}

// findConfigFile returns the first existing default config file.
func findConfigFile() string {
	candidates := []string{Name + ".yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", Name, "config.yaml"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	return ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeySource, string(types.BackendLocal))
	v.SetDefault(KeyRegion, "us-west-2")
	v.SetDefault(KeyContentDir, "content")
	v.SetDefault(KeyMount, "~/content")
	v.SetDefault(KeyPasswdFile, "~/.passwd-s3fs")
	v.SetDefault(KeyEditor, host.DefaultEditor)
	v.SetDefault(KeyAuthor, currentUser())
	v.SetDefault(KeyAddr, ":8000")
	v.SetDefault(KeyStaticDir, "static")
	v.SetDefault(KeySiteTitle, Name)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
}

func aws(v *viper.Viper) types.AWSConfig {
	return types.AWSConfig{
		Bucket: v.GetString(KeyBucket),
		Region: v.GetString(KeyRegion),
	}
}

// Store returns the content store settings.
func Store(v *viper.Viper) types.StoreConfig {
	return types.StoreConfig{
		AWSConfig:  aws(v),
		Source:     types.Backend(strings.ToLower(v.GetString(KeySource))),
		ContentDir: ExpandHome(v.GetString(KeyContentDir)),
	}
}

// Server returns the HTTP site settings.
func Server(v *viper.Viper) types.ServerConfig {
	return types.ServerConfig{
		Addr:         v.GetString(KeyAddr),
		StaticDir:    ExpandHome(v.GetString(KeyStaticDir)),
		SiteTitle:    v.GetString(KeySiteTitle),
		RelatedLimit: v.GetInt(KeyRelated),
	}
}

// Log returns the logger settings.
func Log(v *viper.Viper) types.LogConfig {
	return types.LogConfig{
		Level:  v.GetString(KeyLogLevel),
		Format: v.GetString(KeyLogFormat),
	}
}

// Authoring returns the content CLI settings.
func Authoring(v *viper.Viper) types.AuthoringConfig {
	return types.AuthoringConfig{
		Mount: types.MountConfig{
			AWSConfig:  aws(v),
			Point:      ExpandHome(v.GetString(KeyMount)),
			PasswdFile: ExpandHome(v.GetString(KeyPasswdFile)),
		},
		Editor: v.GetString(KeyEditor),
		Author: v.GetString(KeyAuthor),
	}
}

// Sync returns the upload settings. The ledger defaults to a dotfile in
// the content directory.
func Sync(v *viper.Viper) types.SyncConfig {
	dir := ExpandHome(v.GetString(KeyContentDir))
	ledger := ExpandHome(v.GetString(KeyLedger))
	if ledger == "" {
		ledger = filepath.Join(dir, mirror.LedgerFile)
	}
	return types.SyncConfig{
		AWSConfig:  aws(v),
		ContentDir: dir,
		LedgerPath: ledger,
	}
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return os.Getenv("USER")
}
