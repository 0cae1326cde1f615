package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"obrafacil/config"
	"obrafacil/database"
	chatRepoPkg "obrafacil/database/repository/chat"
	listingRepoPkg "obrafacil/database/repository/listing"
	paymentRepoPkg "obrafacil/database/repository/payment"
	providerRepoPkg "obrafacil/database/repository/provider"
	userRepoPkg "obrafacil/database/repository/user"
	"obrafacil/handlers"
	"obrafacil/middleware"
	"obrafacil/routes"
	"obrafacil/services/chat"
	ai "obrafacil/services/intelligence"
	"obrafacil/services/listing"
	"obrafacil/services/notification"
	"obrafacil/services/payments"
	"obrafacil/services/provider"
	"obrafacil/services/storage"
	"obrafacil/services/user"
	"obrafacil/utils"
	"obrafacil/workers"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	utils.InitializeLogger()
	logger := utils.GetLogger()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	mongoClient, err := database.Connect(ctx, config.AppConfig.DatabaseURL)
	cancel()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to connect to MongoDB: %v", err)
	}
	db := mongoClient.Database(config.AppConfig.DatabaseName)

	utils.InitCache()
	utils.InitAuthCache()

	cloudinaryStorage, err := storage.NewCloudinaryStorageService()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo(db)
	provRepo := providerRepoPkg.NewMongoProviderRepo(db)
	listRepo := listingRepoPkg.NewMongoListingRepo(db)
	convRepo := chatRepoPkg.NewMongoChatRepo(db)
	payRepo := paymentRepoPkg.NewMongoPaymentRepo(db)

	if err := userRepoPkg.EnsureIndexes(db); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure user indexes: %v", err)
	}
	if err := providerRepoPkg.EnsureIndexes(db); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure provider indexes: %v", err)
	}
	if err := listingRepoPkg.EnsureIndexes(db); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure service indexes: %v", err)
	}
	if err := chatRepoPkg.EnsureIndexes(db); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure chat indexes: %v", err)
	}

	// Push notifications are best-effort: without Firebase credentials the
	// marketplace still works, it just stays silent.
	var notifySvc notification.NotificationService
	if fcm, err := utils.FirebaseMessaging(); err != nil {
		logger.Sugar().Warnf("main: firebase messaging disabled: %v", err)
	} else {
		notifySvc = notification.NewDefaultNotificationService(fcm, userRepo, provRepo)
	}

	geminiClient, err := ai.NewGeminiClient(context.Background(), config.AppConfig.GeminiAPIKey)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
	}

	stripe.Key = config.AppConfig.StripeKey
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	userService := &user.DefaultUserService{Repo: userRepo}
	providerService := &provider.DefaultProviderService{
		Repo:  provRepo,
		Users: userRepo,
	}
	listingService := &listing.DefaultListingService{
		Repo:      listRepo,
		Users:     userRepo,
		Providers: provRepo,
		Notify:    notifySvc,
	}
	chatService := &chat.DefaultChatService{Repo: convRepo}
	aiService := &ai.DefaultAIService{
		Gemini:    geminiClient,
		Providers: provRepo,
		Cache:     utils.GetCacheClient(),
		CacheTTL:  6 * time.Hour,
	}
	paymentService := &payments.DefaultPaymentService{
		Repo:      payRepo,
		Providers: provRepo,
		Queue:     queueClient,
	}

	// Mirror the Stripe subscription catalog at boot, best-effort.
	syncCtx, syncCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := paymentService.SyncCatalog(syncCtx); err != nil {
		logger.Sugar().Warnf("main: stripe catalog sync failed: %v", err)
	}
	syncCancel()

	checkoutWorker := workers.NewCheckoutWorker(payRepo)
	if err := checkoutWorker.Start(); err != nil {
		logger.Sugar().Fatalf("main: failed to start checkout worker: %v", err)
	}

	// handlers.
	userHandler := handlers.NewUserHandler(userService)
	providerHandler := handlers.NewProviderHandler(providerService)
	listingHandler := handlers.NewListingHandler(listingService)
	chatHandler := handlers.NewChatHandler(chatService)
	aiHandler := handlers.NewAIHandler(aiService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	storageHandler := handlers.NewStorageHandler(cloudinaryStorage, providerService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     userRepo,
		ProviderRepo: provRepo,

		RegisterUserHandler:        userHandler.RegisterUserHandler,
		AuthenticateUserHandler:    userHandler.AuthenticateUserHandler,
		GetMeHandler:               userHandler.GetMeHandler,
		UpdateUserHandler:          userHandler.UpdateUserHandler,
		UpdateUserFCMTokenHandler:  userHandler.UpdateUserFCMTokenHandler,
		RevokeUserAuthTokenHandler: userHandler.RevokeUserAuthTokenHandler,
		DeleteUserHandler:          userHandler.DeleteUserHandler,

		RegisterProviderHandler:        providerHandler.RegisterProviderHandler,
		AuthenticateProviderHandler:    providerHandler.AuthenticateProviderHandler,
		GetProviderByIDHandler:         providerHandler.GetProviderByIDHandler,
		SearchProvidersHandler:         providerHandler.SearchProvidersHandler,
		UpdateProviderHandler:          providerHandler.UpdateProviderHandler,
		SetAvailabilityHandler:         providerHandler.SetAvailabilityHandler,
		ChangePlanHandler:              providerHandler.ChangePlanHandler,
		AddPortfolioItemHandler:        providerHandler.AddPortfolioItemHandler,
		AddReviewHandler:               providerHandler.AddReviewHandler,
		UpdateProviderFCMTokenHandler:  providerHandler.UpdateProviderFCMTokenHandler,
		RevokeProviderAuthTokenHandler: providerHandler.RevokeProviderAuthTokenHandler,
		DeleteProviderHandler:          providerHandler.DeleteProviderHandler,

		CreateServiceHandler:    listingHandler.CreateServiceHandler,
		GetServiceHandler:       listingHandler.GetServiceHandler,
		ListOpenServicesHandler: listingHandler.ListOpenServicesHandler,
		ListMyServicesHandler:   listingHandler.ListMyServicesHandler,
		ListMyProposalsHandler:  listingHandler.ListMyProposalsHandler,
		SubmitProposalHandler:   listingHandler.SubmitProposalHandler,
		AcceptProposalHandler:   listingHandler.AcceptProposalHandler,
		CompleteServiceHandler:  listingHandler.CompleteServiceHandler,

		OpenChatHandler:     chatHandler.OpenChatHandler,
		ListChatsHandler:    chatHandler.ListChatsHandler,
		SendMessageHandler:  chatHandler.SendMessageHandler,
		ListMessagesHandler: chatHandler.ListMessagesHandler,

		SummarizeReviewsHandler:   aiHandler.SummarizeReviewsHandler,
		RecommendProvidersHandler: aiHandler.RecommendProvidersHandler,

		StartCheckoutHandler: paymentHandler.StartCheckoutHandler,
		GetCheckoutHandler:   paymentHandler.GetCheckoutHandler,
		ListPlansHandler:     paymentHandler.ListPlansHandler,

		UploadImageHandler:  storageHandler.UploadImageHandler,
		UploadAvatarHandler: storageHandler.UploadAvatarHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	checkoutWorker.Shutdown()
	if err := database.Close(mongoClient); err != nil {
		logger.Sugar().Errorf("main: failed to close MongoDB connection: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
