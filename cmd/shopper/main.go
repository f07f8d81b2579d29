// shopper 是商城的命令行客户端：购物车与登录态保存在本地存储，每次调用都从存储冷启动。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/wallmasters/storefront/internal/cart"
	"github.com/wallmasters/storefront/internal/checkout"
	"github.com/wallmasters/storefront/internal/config"
	"github.com/wallmasters/storefront/internal/constants"
	"github.com/wallmasters/storefront/internal/identity"
	"github.com/wallmasters/storefront/internal/logger"
	"github.com/wallmasters/storefront/internal/pricing"
	"github.com/wallmasters/storefront/internal/storefront"

	"github.com/redis/go-redis/v9"
)

const usage = `usage: shopper [flags] <command> [args]

commands:
  products [-category c] [-search s]     list the catalog
  add <product_id> <size>                add one print to the cart
  inc|dec|remove <product_id> <size>     change a cart line
  cart                                   show cart and totals
  register <name> <email> <password>     create an account and sign in
  login <email> <password>               sign in (guest cart is carried over)
  logout                                 sign out
  addresses [default|delete <id>]        manage saved addresses
  checkout [-name ... -save]             place a cash-on-delivery order
  orders                                 list your orders
`

// shopper 一次命令调用所需的全部组件
type shopper struct {
	cfg     *config.Config
	out     io.Writer
	locale  string
	store   cart.Store
	closer  func() error
	queue   *cart.WriteQueue
	session *identity.Session
	cart    *cart.Manager
	api     *storefront.Client
	flow    *checkout.Flow
}

func main() {
	var (
		apiURL   string
		dataFile string
		locale   string
		verbose  bool
	)
	flag.StringVar(&apiURL, "api", "", "接口地址，默认读取 shopper.api_base_url")
	flag.StringVar(&dataFile, "data", "", "本地存储文件，默认读取 shopper.data_file")
	flag.StringVar(&locale, "locale", "", "提示语言（en-US / zh-CN）")
	flag.BoolVar(&verbose, "v", false, "输出调试日志")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	level := "warn"
	if verbose {
		level = "debug"
	}
	logger.Init("release", logger.Options{Writer: os.Stderr, Level: level})

	cfg := config.Load()
	if apiURL != "" {
		cfg.Shopper.APIBaseURL = apiURL
	}
	if dataFile != "" {
		cfg.Shopper.DataFile = dataFile
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	s, err := open(ctx, cfg, os.Stdout, locale)
	if err != nil {
		fmt.Fprintln(os.Stderr, "shopper:", err)
		os.Exit(1)
	}
	runErr := s.run(ctx, flag.Arg(0), flag.Args()[1:])
	if err := s.close(); err != nil {
		logger.Warnw("shopper_close_failed", "error", err)
	}
	if runErr != nil {
		if errors.Is(runErr, errUsage) {
			fmt.Fprintln(os.Stderr, runErr)
			flag.Usage()
			os.Exit(2)
		}
		logger.Debugw("shopper_command_failed", "command", flag.Arg(0), "error", runErr)
		fmt.Fprintln(os.Stderr, checkout.UserMessage(locale, runErr))
		os.Exit(1)
	}
}

// open 打开本地存储、恢复登录态并按当前身份加载购物车
func open(ctx context.Context, cfg *config.Config, out io.Writer, locale string) (*shopper, error) {
	store, closer, err := openStore(cfg)
	if err != nil {
		return nil, err
	}
	session, err := identity.NewSession(ctx, store)
	if err != nil {
		_ = closer()
		return nil, err
	}

	queue := cart.NewWriteQueue(store)
	manager := cart.NewManager(store, queue, cart.WithMigrationStrategy(cfg.Cart.MigrationStrategy))
	if err := manager.Bind(ctx, session); err != nil {
		_ = queue.Close(ctx)
		_ = closer()
		return nil, err
	}

	timeout := time.Duration(cfg.Shopper.TimeoutSeconds) * time.Second
	api := storefront.New(cfg.Shopper.APIBaseURL,
		storefront.WithTimeout(timeout),
		storefront.WithTokenSource(session),
		storefront.WithLocale(locale),
	)
	flow := checkout.NewFlow(manager, api, session, pricing.RuleFromConfig(cfg.Checkout), cfg.Checkout.Country)

	return &shopper{
		cfg:     cfg,
		out:     out,
		locale:  locale,
		store:   store,
		closer:  closer,
		queue:   queue,
		session: session,
		cart:    manager,
		api:     api,
		flow:    flow,
	}, nil
}

func openStore(cfg *config.Config) (cart.Store, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Cart.Store)) {
	case constants.CartStoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		prefix := cfg.Redis.Prefix
		if prefix == "" {
			prefix = constants.RedisPrefixDefault
		}
		return cart.NewRedisStore(client, prefix+":shopper", 0), client.Close, nil
	case constants.CartStoreMemory:
		return cart.NewMemoryStore(), func() error { return nil }, nil
	default:
		store, err := cart.OpenBoltStore(cfg.Shopper.DataFile)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
}

// close 先落盘购物车写入，再关闭存储
func (s *shopper) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	flushErr := s.queue.Close(ctx)
	closeErr := s.closer()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
