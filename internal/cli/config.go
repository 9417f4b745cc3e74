package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"lms-packages/internal/app"
	"lms-packages/internal/types"
)

const defaultCacheDirName = ".lms-packages"

type settingsFlags struct {
	OS              string
	Compiler        string
	CompilerVersion string
	BuildType       string
	Arch            string
}

func addSettingsFlags(cmd *cobra.Command, flags *settingsFlags) {
	cmd.PersistentFlags().StringVar(&flags.OS, "os", "", "Target operating system setting")
	cmd.PersistentFlags().StringVar(&flags.Compiler, "compiler", "", "Compiler setting")
	cmd.PersistentFlags().StringVar(&flags.CompilerVersion, "compiler-version", "", "Compiler version setting")
	cmd.PersistentFlags().StringVar(&flags.BuildType, "build-type", "", "Build type setting")
	cmd.PersistentFlags().StringVar(&flags.Arch, "arch", "", "Target architecture setting")
	_ = viper.BindPFlag("settings.os", cmd.PersistentFlags().Lookup("os"))
	_ = viper.BindPFlag("settings.compiler", cmd.PersistentFlags().Lookup("compiler"))
	_ = viper.BindPFlag("settings.compiler_version", cmd.PersistentFlags().Lookup("compiler-version"))
	_ = viper.BindPFlag("settings.build_type", cmd.PersistentFlags().Lookup("build-type"))
	_ = viper.BindPFlag("settings.arch", cmd.PersistentFlags().Lookup("arch"))
}

// resolveSettings reads the settings tuple from flags, environment and
// config file, in that order of precedence.
func resolveSettings() types.Settings {
	return types.Settings{
		OS:              strings.TrimSpace(viper.GetString("settings.os")),
		Compiler:        strings.TrimSpace(viper.GetString("settings.compiler")),
		CompilerVersion: strings.TrimSpace(viper.GetString("settings.compiler_version")),
		BuildType:       strings.TrimSpace(viper.GetString("settings.build_type")),
		Arch:            strings.TrimSpace(viper.GetString("settings.arch")),
	}
}

func cacheDir() string {
	if dir := strings.TrimSpace(viper.GetString("cache_dir")); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		log.Warn().Err(err).Msg("home directory unavailable, using working directory for cache")
		return defaultCacheDirName
	}
	return filepath.Join(home, defaultCacheDirName)
}

var newAppService = func() app.Service {
	return app.NewService(cacheDir())
}

// resolveString prefers an explicitly set flag, then the config key, then
// the flag default.
func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return value
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
