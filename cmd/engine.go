package cmd

import (
	"context"

	"github.com/spf13/viper"
	"github.com/vbauerster/mpb/v4"
	"go.uber.org/zap"

	"github.com/crafthub/depcraft/core"
	"github.com/crafthub/depcraft/download"
	"github.com/crafthub/depcraft/index"
	"github.com/crafthub/depcraft/internal/logging"
	"github.com/crafthub/depcraft/internal/shared"
	"github.com/crafthub/depcraft/orchestrate"
	"github.com/crafthub/depcraft/profile"
	"github.com/crafthub/depcraft/registry"
)

// engine bundles the wired-up pipeline for one command invocation.
type engine struct {
	log          *zap.Logger
	store        *profile.Store
	installation *core.Installation
	installed    *index.Index
	scanner      *index.Scanner
	orch         *orchestrate.Orchestrator
	cache        *index.HashCache
	progress     *mpb.Progress
}

// newEngine constructs the pipeline. With needProfile the selected profile is
// resolved and required; commands that only manage profiles pass false.
func newEngine(needProfile bool) *engine {
	log := logging.New(viper.GetBool("verbose"))
	zap.ReplaceGlobals(log)

	store, err := profile.Load(viper.GetString("profiles-file"))
	if err != nil {
		shared.Exitln(err)
	}

	var installation *core.Installation
	if needProfile {
		name := viper.GetString("profile")
		if name == "" {
			names := store.Names()
			if len(names) == 1 {
				name = names[0]
			} else {
				shared.Exitln("No profile selected; pass --profile or create one with 'depcraft profile add'")
			}
		}
		installation, err = store.Installation(name)
		if err != nil {
			shared.Exitln(err)
		}
	}

	cachePath := viper.GetString("hash-cache")
	if installation != nil {
		if p, ok := store.Get(installation.Name); ok {
			if opts, err := p.DecodeOptions(); err == nil && opts.HashCachePath != "" {
				cachePath = opts.HashCachePath
			}
		}
	}
	cache, err := index.OpenHashCache(cachePath)
	if err != nil {
		log.Warn("hash cache unavailable, rescans will rehash everything", zap.Error(err))
		cache = nil
	}

	scanner := index.NewScanner(cache, log)
	installed := index.New()
	reg := registry.NewCachedClient(registry.NewModrinthClient(nil))
	executor := download.NewExecutor(nil, log)
	progress := mpb.New(mpb.WithWidth(60))

	orch := orchestrate.New(reg, installed, scanner, executor, log,
		orchestrate.WithProgress(func(name string) download.ProgressFunc {
			return download.BarProgress(progress, name)
		}))

	return &engine{
		log:          log,
		store:        store,
		installation: installation,
		installed:    installed,
		scanner:      scanner,
		orch:         orch,
		cache:        cache,
		progress:     progress,
	}
}

// rescan rebuilds the installed index for the package type, merging in the
// mods directory when another type is targeted since dependencies are
// usually mods.
func (e *engine) rescan(ctx context.Context, packageType core.PackageType) {
	entries, err := e.scanner.Scan(ctx, e.installation.ResourceDirFor(packageType), packageType)
	if err != nil {
		shared.Exitln(err)
	}
	e.installed.Replace(entries)

	if packageType != core.PackageMod {
		modEntries, err := e.scanner.Scan(ctx, e.installation.ResourceDirFor(core.PackageMod), core.PackageMod)
		if err != nil {
			shared.Exitln(err)
		}
		for _, entry := range modEntries {
			e.installed.Insert(entry)
		}
	}
}

func (e *engine) close() {
	if e.cache != nil {
		_ = e.cache.Close()
	}
	_ = e.log.Sync()
}

func packageTypeFlag(raw string) core.PackageType {
	pt, err := core.ParsePackageType(raw)
	if err != nil {
		shared.Exitln(err)
	}
	return pt
}
