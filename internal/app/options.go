package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/logger"

	"go.uber.org/zap"
)

// 运行模式：all 同时启动 API 与 worker
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

// servesAPI / servesWorker 当前模式需要启动的服务
func servesAPI(mode string) bool    { return mode == ModeAll || mode == ModeAPI }
func servesWorker(mode string) bool { return mode == ModeAll || mode == ModeWorker }

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = logger.S()
	}
	if o.ShutdownTimeout <= 0 {
		o.ShutdownTimeout = defaultShutdownTimeout
	}
	o.Mode = strings.ToLower(strings.TrimSpace(o.Mode))
	if o.Mode == "" {
		o.Mode = ModeAll
	}
	return o
}

// prepare 补齐默认值并校验，Run 与测试共用
func (o Options) prepare() (Options, error) {
	o = o.withDefaults()
	if o.Config == nil {
		return o, errors.New("config is nil")
	}
	if !servesAPI(o.Mode) && !servesWorker(o.Mode) {
		return o, fmt.Errorf("unknown mode %q (want %s/%s/%s)", o.Mode, ModeAll, ModeAPI, ModeWorker)
	}
	return o, nil
}
