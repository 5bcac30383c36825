package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/zoro11031/routegen/internal/generate"
	"github.com/zoro11031/routegen/internal/system"
)

// ErrRouteOutdated is returned by RunCheck when the route file is missing or differs.
var ErrRouteOutdated = errors.New("route file is not up to date")

// RunWrite overwrites the resolved target with the route payload.
// A declined confirmation is reported and is not an error.
func RunWrite(ctx *Context, targetFlag string, confirm bool) error {
	target := ctx.ResolveTarget(targetFlag)

	err := ctx.Generator.Write(target, generate.WriteOptions{Confirm: confirm})
	if errors.Is(err, generate.ErrCancelled) {
		ctx.UI.Info("Write cancelled, route file left unchanged")
		return nil
	}
	return err
}

// RunCheck reports whether the resolved target matches the route payload
func RunCheck(ctx *Context, targetFlag string) error {
	target := ctx.ResolveTarget(targetFlag)

	status, err := ctx.Generator.Check(target)
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", target, err)
	}

	switch {
	case !status.Exists:
		dir := filepath.Dir(target)
		if ok, err := system.DirectoryExists(dir); err == nil && !ok {
			ctx.UI.Warningf("Route directory does not exist: %s", dir)
			ctx.UI.Info("Create it first; routegen never creates directories")
			return ErrRouteOutdated
		}
		ctx.UI.Warningf("Route file not found: %s", target)
		ctx.UI.Info("Run 'routegen write' to create it")
		return ErrRouteOutdated
	case !status.UpToDate:
		ctx.UI.Warningf("Route file differs from the embedded handler at line %d: %s", status.FirstDiffLine, target)
		ctx.UI.Info("Run 'routegen write' to replace it")
		return ErrRouteOutdated
	}

	ctx.UI.Successf("Route file is up to date: %s", target)
	return nil
}

// RunShow prints the route payload to stdout
func RunShow(ctx *Context) error {
	return ctx.Generator.Show()
}
