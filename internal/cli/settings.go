package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zoro11031/routegen/internal/common"
	"github.com/zoro11031/routegen/internal/config"
)

// settingValidators checks values written with `routegen config set`.
var settingValidators = map[string]func(string) error{
	config.KeyRouteTarget:     common.ValidateRouteTarget,
	config.KeyAPIURL:          common.ValidateURL,
	config.KeyListenAddr:      common.ValidateListenAddr,
	config.KeySessionCookie:   common.ValidateNotEmpty,
	config.KeyAllowedOrigins:  validateOrigins,
	config.KeyUpstreamTimeout: common.ValidateDuration,
}

// ValidateSetting checks that key is known and value is acceptable for it
func ValidateSetting(key, value string) error {
	if !config.IsKnownKey(key) {
		return fmt.Errorf("unknown setting %q (known: %s)", key, strings.Join(config.KnownKeys, ", "))
	}
	if validate, ok := settingValidators[key]; ok {
		if err := validate(value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func validateOrigins(value string) error {
	for _, origin := range strings.Split(value, ",") {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		if err := common.ValidateURL(origin); err != nil {
			return err
		}
	}
	return nil
}

// ListSettings prints every stored setting, then the defaults that apply to unset keys.
func ListSettings(ctx *Context) error {
	if err := ctx.loadConfig(); err != nil {
		return err
	}
	stored := ctx.Config.GetAll()

	ctx.UI.Header("routegen settings")
	ctx.UI.Infof("Configuration file: %s", ctx.Config.FilePath())

	var out strings.Builder
	keys := make([]string, 0, len(stored))
	for k := range stored {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&out, "%s=%s\n", k, stored[k])
	}

	for _, k := range config.KnownKeys {
		if _, ok := stored[k]; ok {
			continue
		}
		if v, ok := config.Defaults[k]; ok {
			fmt.Fprintf(&out, "%s=%s (default)\n", k, v)
		}
	}
	return ctx.UI.Result([]byte(out.String()))
}

// GetSetting prints the stored value of key, or its default when unset
func GetSetting(ctx *Context, key string) error {
	if err := ctx.loadConfig(); err != nil {
		return err
	}

	value, err := ctx.Config.Get(key)
	if err != nil {
		if !config.IsKnownKey(key) {
			return fmt.Errorf("unknown setting %q", key)
		}
		value = config.Defaults[key]
	}
	return ctx.UI.Result([]byte(value + "\n"))
}

// SetSetting validates and stores key. With no value it prompts for one,
// offering the current value as the default.
func SetSetting(ctx *Context, key string, value *string) error {
	if !config.IsKnownKey(key) {
		return ValidateSetting(key, "")
	}

	var v string
	if value != nil {
		v = *value
	} else {
		current := ctx.Config.GetOrDefault(key, "")
		answer, err := ctx.UI.PromptInputWithValidation(fmt.Sprintf("Value for %s:", key), current, func(ans interface{}) error {
			s, _ := ans.(string)
			return ValidateSetting(key, s)
		})
		if err != nil {
			return err
		}
		v = answer
	}

	if err := ValidateSetting(key, v); err != nil {
		return err
	}
	if err := ctx.Config.Set(key, v); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	ctx.UI.Successf("%s=%s saved to %s", key, v, ctx.Config.FilePath())
	return nil
}

// UnsetSetting removes key from the settings file
func UnsetSetting(ctx *Context, key string) error {
	if !ctx.Config.Exists(key) {
		ctx.UI.Infof("%s is not set", key)
		return nil
	}
	if err := ctx.Config.Delete(key); err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	ctx.UI.Successf("Removed %s", key)
	return nil
}
