package provider

import (
	"github.com/dwarmarket/internal/authz"
	"github.com/dwarmarket/internal/cache"
	"github.com/dwarmarket/internal/config"
	"github.com/dwarmarket/internal/logger"
	"github.com/dwarmarket/internal/media"
	"github.com/dwarmarket/internal/models"
	"github.com/dwarmarket/internal/queue"
	"github.com/dwarmarket/internal/repository"
	"github.com/dwarmarket/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Media       *media.Builder

	// Repositories
	UserRepo          repository.UserRepository
	CategoryRepo      repository.CategoryRepository
	StoreRepo         repository.StoreRepository
	StoreCategoryRepo repository.StoreCategoryRepository
	ProductRepo       repository.ProductRepository
	CartRepo          repository.CartRepository
	OrderRepo         repository.OrderRepository

	// Services
	AuthzService         *authz.Service
	UserAuthService      *service.UserAuthService
	UserAdminService     *service.UserAdminService
	EmailService         *service.EmailService
	CategoryService      *service.CategoryService
	StoreService         *service.StoreService
	StoreCategoryService *service.StoreCategoryService
	ProductService       *service.ProductService
	CartService          *service.CartService
	OrderService         *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Media:       media.NewBuilder(cfg.Media.BaseURL),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.StoreCategoryRepo = repository.NewStoreCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.UserAdminService = service.NewUserAdminService(c.UserRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.StoreService = service.NewStoreService(c.StoreRepo, c.CategoryRepo)
	c.StoreCategoryService = service.NewStoreCategoryService(c.StoreCategoryRepo, c.StoreRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.StoreRepo, c.StoreCategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.CartRepo, c.ProductRepo, c.QueueClient)
}
