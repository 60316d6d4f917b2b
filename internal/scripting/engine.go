// Package scripting hosts the Lua scenario hooks. Scenario authors can
// override simulation knobs (currently the guest spawn probability)
// without recompiling the server.
package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM for scenario hooks.
// Single-goroutine access only (simulation loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given
// directory. A missing directory is fine: the scenario just has no hooks.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}
	if err := e.loadDir(scriptsDir); err != nil {
		vm.Close()
		return nil, err
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read scripts %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load script %s: %w", path, err)
		}
		e.log.Debug("scenario script loaded", zap.String("path", path))
	}
	return nil
}

// SpawnProbability calls the scenario's spawn_probability(resolution) hook.
// The second return reports whether the hook exists; without it the caller
// falls back to the configured constant.
func (e *Engine) SpawnProbability(resolution int) (int, bool) {
	fn := e.vm.GetGlobal("spawn_probability")
	if fn == lua.LNil {
		return 0, false
	}
	if err := e.vm.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, lua.LNumber(resolution)); err != nil {
		e.log.Warn("spawn_probability hook failed", zap.Error(err))
		return 0, false
	}
	ret := e.vm.Get(-1)
	e.vm.Pop(1)
	n, ok := ret.(lua.LNumber)
	if !ok {
		e.log.Warn("spawn_probability hook returned a non-number",
			zap.String("type", ret.Type().String()))
		return 0, false
	}
	v := int(n)
	if v < 0 {
		v = 0
	}
	if v > resolution {
		v = resolution
	}
	return v, true
}

// Close releases the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
