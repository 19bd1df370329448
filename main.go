package main

import (
	"log"
	"time"

	"assessment-service/internal/config"
	"assessment-service/internal/db"
	"assessment-service/internal/event"
	"assessment-service/internal/handlers"
	"assessment-service/internal/repository"
	"assessment-service/internal/selection"
	"assessment-service/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if err := db.InitMongo(cfg.MongoURI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close()

	var publisher *event.EventPublisher
	if cfg.RabbitURI != "" && cfg.RabbitExchange != "" {
		publisher, err = event.NewEventPublisher(cfg.RabbitURI, cfg.RabbitExchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
	} else {
		log.Println("RabbitMQ not configured, domain events will not be published")
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Content-Length", "Accept-Encoding", "Authorization", "X-User-ID", "X-User-Role"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	database := db.Client.Database(cfg.MongoDatabase)

	questionRepo := repository.NewQuestionRepository(database)
	topicRepo := repository.NewTopicRepository(database)
	testRepo := repository.NewTestRepository(database)
	resultRepo := repository.NewResultRepository(database)
	distRepo := repository.NewDistributionRepository(database)
	companyRepo := repository.NewCompanyRepository(database)

	// A nil *EventPublisher must stay a nil interface inside services.
	var events service.Publisher
	if publisher != nil {
		events = publisher
	}

	selector := selection.NewSelector(questionRepo, topicRepo, distRepo, companyRepo)
	testService := service.NewTestService(selector, testRepo, questionRepo, events)
	resultService := service.NewResultService(resultRepo, testRepo, questionRepo, events)
	analyticsService := service.NewAnalyticsService(resultRepo, testRepo, questionRepo, topicRepo)
	topicService := service.NewTopicService(topicRepo, distRepo)
	questionService := service.NewQuestionService(questionRepo, topicRepo, events)

	testHandler := handlers.NewTestHandler(testService)
	resultHandler := handlers.NewResultHandler(resultService, analyticsService)
	historyHandler := handlers.NewHistoryHandler(analyticsService)
	topicHandler := handlers.NewTopicHandler(topicService)
	questionHandler := handlers.NewQuestionHandler(questionService)

	public := r.Group("/public")
	{
		public.GET("/tests/:id", testHandler.GetTest)
		public.GET("/topics", topicHandler.GetAllTopics)
		public.GET("/topics/cet", topicHandler.GetCETTopics)
		public.GET("/topics/subject/:subjectName", topicHandler.GetTopicsBySubject)
	}

	protected := r.Group("/protected", handlers.RequireIdentity())
	{
		create := protected.Group("/tests/create")
		{
			create.POST("/:level/custom", testHandler.CreateCustomTest)
			create.POST("/:level/company", testHandler.CreateCompanyTest)
			create.POST("/:level/cet", testHandler.CreateCETTest)
			create.POST("/:level/gate", testHandler.CreateGateTest)
		}

		protected.POST("/tests/submit/:id", resultHandler.SubmitTest)

		protected.GET("/results/:id", resultHandler.GetTestResult)
		protected.GET("/results/:id/recommendations", resultHandler.GetResultWithRecommendations)

		protected.GET("/history", historyHandler.GetUserHistory)
		protected.GET("/history/analytics", historyHandler.GetUserAnalytics)

		admin := protected.Group("/questions", handlers.RequireAdmin())
		{
			admin.POST("/bulk", questionHandler.BulkImport)
		}
	}

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
