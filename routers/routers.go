package routers

import (
	"log/slog"
	"net/http"

	"eathub/cache"
	"eathub/config"
	"eathub/handlers"
	"eathub/middleware"
	"eathub/notify"
	"eathub/reports"
	"eathub/respond"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupRouters(cfg config.Config, db *gorm.DB, store *cache.Cache, notifier notify.Notifier, logger *slog.Logger, metrics *middleware.Metrics) (*gin.Engine, error) {
	reporter, err := reports.New(db)
	if err != nil {
		return nil, err
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger, metrics), middleware.CORSMiddleware(cfg.Server.CORSOrigin))
	if err := router.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	router.MaxMultipartMemory = 4 << 20
	router.NoRoute(func(c *gin.Context) {
		respond.Fail(c, http.StatusNotFound, "NOT_FOUND", "route not found")
	})

	router.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c)
		}
		if err != nil {
			respond.Fail(c, http.StatusServiceUnavailable, "UNHEALTHY", "database unreachable")
			return
		}
		respond.OK(c, http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	//identity is attached when a token verifies; anonymous requests pass through
	api.Use(middleware.AuthMiddleware(db, cfg.Auth.JWTSecret))
	{
		api.GET("/menu", func(context *gin.Context) {
			handlers.GetMenuHandler(context, db, store)
		})
		api.GET("/menu/featured", func(context *gin.Context) {
			handlers.GetFeaturedMenuHandler(context, db, store)
		})
		api.GET("/menu/announcement", func(context *gin.Context) {
			handlers.GetAnnouncementHandler(context, db)
		})
		api.GET("/menu/:id", func(context *gin.Context) {
			handlers.GetMenuItemHandler(context, db)
		})

		api.POST("/orders", func(context *gin.Context) {
			handlers.CreateOrderHandler(context, db, notifier)
		})
		api.GET("/orders/:orderNumber", func(context *gin.Context) {
			handlers.GetOrderHandler(context, db)
		})

		api.GET("/vouchers", func(context *gin.Context) {
			handlers.GetVoucherListHandler(context, db)
		})
		api.POST("/vouchers/validate", func(context *gin.Context) {
			handlers.ValidateVoucherHandler(context, db)
		})
		api.POST("/vouchers/apply", func(context *gin.Context) {
			handlers.ApplyVoucherHandler(context, db)
		})

		api.GET("/rewards", func(context *gin.Context) {
			handlers.GetRewardCatalogHandler(context, db)
		})
		api.GET("/rewards/user", func(context *gin.Context) {
			handlers.GetUserRewardsHandler(context, db)
		})
		api.GET("/rewards/transactions", func(context *gin.Context) {
			handlers.GetRewardTransactionsHandler(context, db)
		})
		api.POST("/rewards/redeem", func(context *gin.Context) {
			handlers.RedeemRewardHandler(context, db)
		})

		api.GET("/categories", func(context *gin.Context) {
			handlers.GetCategoryListHandler(context, db, store)
		})
		api.POST("/feedback", func(context *gin.Context) {
			handlers.CreateFeedbackHandler(context, db)
		})

		api.POST("/auth/signup", func(context *gin.Context) {
			handlers.SignupHandler(context, db, cfg.Auth)
		})
		api.POST("/auth/login", func(context *gin.Context) {
			handlers.LoginHandler(context, db, cfg.Auth)
		})
		api.POST("/auth/verify", func(context *gin.Context) {
			handlers.VerifyHandler(context, db, cfg.Auth)
		})

		loginRequired := api.Group("")
		loginRequired.Use(middleware.CheckLoginMiddleware())
		{
			loginRequired.POST("/auth/logout", func(context *gin.Context) {
				handlers.LogOutHandler(context, db)
			})
		}

		adminRequired := api.Group("")
		adminRequired.Use(middleware.CheckLoginMiddleware(), middleware.CheckAdminPermissionMiddleware(db))
		{
			adminRequired.POST("/menu", func(context *gin.Context) {
				handlers.CreateMenuItemHandler(context, db, store)
			})
			adminRequired.PUT("/menu/:id", func(context *gin.Context) {
				handlers.UpdateMenuItemHandler(context, db, store)
			})
			adminRequired.DELETE("/menu/:id", func(context *gin.Context) {
				handlers.DeleteMenuItemHandler(context, db, store)
			})
			adminRequired.POST("/menu/image", func(context *gin.Context) {
				handlers.UploadImageHandler(context, db, store)
			})
			adminRequired.PUT("/menu/announcement", func(context *gin.Context) {
				handlers.SetAnnouncementHandler(context, db)
			})

			adminRequired.GET("/orders", func(context *gin.Context) {
				handlers.GetOrderListHandler(context, db)
			})
			adminRequired.PUT("/orders/:orderNumber/status", func(context *gin.Context) {
				handlers.UpdateOrderStatusHandler(context, db, notifier)
			})

			adminRequired.POST("/vouchers", func(context *gin.Context) {
				handlers.CreateVoucherHandler(context, db)
			})
			adminRequired.PUT("/vouchers/:id", func(context *gin.Context) {
				handlers.UpdateVoucherHandler(context, db)
			})
			adminRequired.DELETE("/vouchers/:id", func(context *gin.Context) {
				handlers.DeleteVoucherHandler(context, db)
			})

			adminRequired.POST("/rewards", func(context *gin.Context) {
				handlers.CreateRewardHandler(context, db)
			})
			adminRequired.PUT("/rewards/:id", func(context *gin.Context) {
				handlers.UpdateRewardHandler(context, db)
			})
			adminRequired.DELETE("/rewards/:id", func(context *gin.Context) {
				handlers.DeleteRewardHandler(context, db)
			})

			adminRequired.POST("/categories", func(context *gin.Context) {
				handlers.CreateCategoryHandler(context, db, store)
			})
			adminRequired.PUT("/categories/:id", func(context *gin.Context) {
				handlers.UpdateCategoryHandler(context, db, store)
			})
			adminRequired.DELETE("/categories/:id", func(context *gin.Context) {
				handlers.DeleteCategoryHandler(context, db, store)
			})

			adminRequired.GET("/feedback", func(context *gin.Context) {
				handlers.GetFeedbackListHandler(context, db)
			})
			adminRequired.GET("/admin/stats", func(context *gin.Context) {
				handlers.GetStatsHandler(context, reporter)
			})
		}
	}

	return router, nil
}
