package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pharus/internal/board"
	"pharus/internal/bus"
	"pharus/internal/chat"
	"pharus/internal/config"
	"pharus/internal/handler"
	"pharus/internal/middleware"
	"pharus/internal/model"
	"pharus/internal/repository"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Store  *board.Store
	Bus    *bus.Bus
}

// boardLoader fetches the three lists the board store reconciles from.
type boardLoader struct {
	columnRepo *repository.ColumnRepository
	taskRepo   *repository.TaskRepository
	userRepo   *repository.UserRepository
}

func (l *boardLoader) LoadBoard(ctx context.Context) ([]model.Column, []model.Task, []model.User, error) {
	columns, err := l.columnRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	tasks, err := l.taskRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	users, err := l.userRepo.List(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return columns, tasks, users, nil
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := repository.Migrate(db); err != nil {
		return nil, fmt.Errorf("❌ failed to migrate DB: %w", err)
	}
	log.Println("✅ Migrations applied")

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	columnRepo := repository.NewColumnRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	if _, err := columnRepo.SeedDefaults(context.Background()); err != nil {
		return nil, fmt.Errorf("❌ failed to seed columns: %w", err)
	}

	// Shared infrastructure
	changeBus := bus.New()
	store := board.NewStore(&boardLoader{
		columnRepo: columnRepo,
		taskRepo:   taskRepo,
		userRepo:   userRepo,
	})
	tracker := chat.NewTracker()
	hub := chat.NewHub()

	if err := store.Reload(context.Background()); err != nil {
		log.Printf("⚠️  Initial board load failed: %v", err)
	}

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo)
	columnHandler := handler.NewColumnHandler(columnRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, columnRepo, userRepo, changeBus)
	boardHandler := handler.NewBoardHandler(store)
	chatHandler := handler.NewChatHandler(messageRepo, userRepo, tracker, hub)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes - require authentication
	authorized := r.Group("/")
	authorized.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// User routes
		authorized.GET("/me", userHandler.Me)
		authorized.PUT("/me", userHandler.UpdateProfile)
		authorized.GET("/users", userHandler.List)
		authorized.DELETE("/users/:id", userHandler.Deactivate)

		// Column routes
		authorized.GET("/columns", columnHandler.GetAll)
		authorized.POST("/columns", columnHandler.Create)
		authorized.POST("/columns/seed", columnHandler.Seed)

		// Task routes
		authorized.POST("/tasks", taskHandler.Create)
		authorized.GET("/tasks", taskHandler.GetAll)
		authorized.GET("/tasks/:id", taskHandler.GetByID)
		authorized.PUT("/tasks/:id", taskHandler.Update)
		authorized.DELETE("/tasks/:id", taskHandler.Delete)
		authorized.POST("/tasks/:id/move", taskHandler.Move)
		authorized.PATCH("/tasks/:id/complete", taskHandler.SetCompletion)

		// Board views
		authorized.GET("/board", boardHandler.GetBoard)
		authorized.GET("/board/table", boardHandler.GetTable)

		// Chat routes
		authorized.GET("/chat/contacts", chatHandler.Contacts)
		authorized.GET("/chat/conversations/:user_id", chatHandler.Conversation)
		authorized.POST("/chat/conversations/:user_id/read", chatHandler.MarkRead)
		authorized.POST("/chat/conversations/close", chatHandler.CloseConversation)
		authorized.POST("/chat/messages", chatHandler.Send)
		authorized.GET("/chat/unread", chatHandler.Unread)
		authorized.GET("/chat/stream", chatHandler.Stream)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
		Store:  store,
		Bus:    changeBus,
	}, nil
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	// Background refresh: the poller and the change-signal listener both
	// funnel into the board store.
	ctx, cancel := context.WithCancel(context.Background())
	events, unsubscribe := s.Bus.Subscribe()
	go s.Store.RunPoller(ctx, s.Config.BoardPollInterval)
	go s.Store.RunBusListener(ctx, events)

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	cancel()
	unsubscribe()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
