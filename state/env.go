// Package state defines shared program state.
package state

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chrisuehlinger/lightdom/config"
	"github.com/chrisuehlinger/lightdom/network"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	loader        *network.Loader
	start         time.Time
	restoreStdLog func()
}

func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Log:   zap.NewNop(),
		start: time.Now(),
	}
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// Loader returns the network loader configured from e.Cfg, creating it on
// first use.
func (e *LocalEnv) Loader() (*network.Loader, error) {
	if e.loader != nil {
		return e.loader, nil
	}
	if e.Cfg == nil {
		return nil, fmt.Errorf("configuration is not loaded")
	}
	nc := e.Cfg.Network
	client, err := network.NewClient(
		network.WithTimeout(nc.Timeout),
		network.WithUserAgent(nc.UserAgent),
		network.WithMaxRedirects(nc.MaxRedirects),
		network.WithMaxBodySize(nc.MaxBodySize),
		network.WithLogger(e.Log),
	)
	if err != nil {
		return nil, err
	}
	e.loader = network.NewLoader(client, network.WithCache(network.NewCache(nc.CacheEntries, nc.CacheTTL)))
	return e.loader, nil
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
