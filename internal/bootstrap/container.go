package bootstrap

import (
	"log"

	"github.com/suklaray/hrms-sub002/internal/config"
	"github.com/suklaray/hrms-sub002/internal/constant"
	"github.com/suklaray/hrms-sub002/internal/controller"
	"github.com/suklaray/hrms-sub002/internal/pkg/logger"
	"github.com/suklaray/hrms-sub002/internal/service"
	"github.com/suklaray/hrms-sub002/pkg/assistant/conversation"
	"github.com/suklaray/hrms-sub002/pkg/assistant/intent"
	"github.com/suklaray/hrms-sub002/pkg/assistant/knowledge"
	"github.com/suklaray/hrms-sub002/pkg/assistant/learning"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AssistantController controller.IAssistantController
	AdminController     controller.IAdminController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Assistant Core
	contexts := conversation.NewStore()
	detector := intent.NewDetector(intent.DefaultTable(), contexts)
	knowledgeBase := knowledge.NewBase(cfg.Assistant.KnowledgeDir, sysLogger)

	var learningStore learning.Store
	if cfg.Assistant.LearningStore == "postgres" && db != nil {
		gormStore, err := learning.NewGormStore(db)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize learning store: %v", err)
		}
		learningStore = gormStore
		log.Printf("[INFO] Using Learning Store: POSTGRES")
	} else {
		learningStore = learning.NewFileStore(cfg.Assistant.LearningCachePath)
		log.Printf("[INFO] Using Learning Store: FILE (%s)", cfg.Assistant.LearningCachePath)
	}
	learningCache := learning.NewCache(learningStore, cfg.Assistant.LearningFlushEvery, sysLogger)

	// 4. Services
	publisherService := service.NewPublisherService(constant.RecordInteractionTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, constant.RecordInteractionTopic, learningCache, sysLogger)
	assistantService := service.NewAssistantService(
		detector,
		contexts,
		knowledgeBase,
		learningCache,
		publisherService,
		sysLogger,
	)

	// 5. Controllers
	assistantController := controller.NewAssistantController(assistantService)
	adminController := controller.NewAdminController(contexts, learningCache, sysLogger)

	return &Container{
		AssistantController: assistantController,
		AdminController:     adminController,
		ConsumerService:     consumerService,
	}
}
