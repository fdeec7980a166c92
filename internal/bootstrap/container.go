package bootstrap

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"notepocket/internal/config"
	"notepocket/internal/controller"
	"notepocket/internal/persistence"
	"notepocket/internal/pkg/logger"
	"notepocket/internal/repository/memory"
	"notepocket/internal/service"
	"notepocket/internal/store"
	"notepocket/pkg/cleanup"
	"notepocket/pkg/llm/groq"
)

type Container struct {
	// Controllers
	NoteController     controller.INoteController
	EditorController   controller.IEditorController
	SettingsController controller.ISettingsController

	// Background Services (Exposed for main.go to run)
	PersistService service.IPersistService

	// Stores (Exposed for hydration and the readiness gate)
	NotesStore    *store.NotesStore
	ThemeStore    *store.ThemeStore
	LanguageStore *store.LanguageStore

	Logger logger.ILogger
}

func NewContainer(stateStore persistence.StateStore, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus (persistence write-through queue)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisherService := service.NewPublisherService(cfg.Storage.ChangeTopicName, pubSub, sysLogger)

	// 3. Stores
	notesStore := store.NewNotesStore(stateStore, publisherService, sysLogger)
	themeStore := store.NewThemeStore(stateStore, publisherService, sysLogger)
	languageStore := store.NewLanguageStore(stateStore, publisherService, sysLogger)

	persistService := service.NewPersistService(
		pubSub,
		cfg.Storage.ChangeTopicName,
		stateStore,
		map[string]service.StateMarshaler{
			store.NotesStoreName:    notesStore,
			store.ThemeStoreName:    themeStore,
			store.LanguageStoreName: languageStore,
		},
		sysLogger,
	)

	// 4. Cleanup Collaborator
	llmProvider := groq.NewGroqProvider(
		cfg.Cleanup.APIKey,
		cfg.Cleanup.BaseURL,
		cfg.Cleanup.Model,
	)
	cleanupService := cleanup.NewService(llmProvider)

	// 5. Editor Sessions (In-Memory)
	sessionRepo := memory.NewSessionRepository(cfg.Editor.SessionTTL)

	// 6. Services
	noteService := service.NewNoteService(notesStore)
	editorService := service.NewEditorService(notesStore, sessionRepo, cleanupService, sysLogger)
	settingsService := service.NewSettingsService(themeStore, languageStore)

	// 7. Controllers
	return &Container{
		NoteController:     controller.NewNoteController(noteService),
		EditorController:   controller.NewEditorController(editorService),
		SettingsController: controller.NewSettingsController(settingsService),

		PersistService: persistService,

		NotesStore:    notesStore,
		ThemeStore:    themeStore,
		LanguageStore: languageStore,

		Logger: sysLogger,
	}
}

// Hydrate loads every persisted store exactly once. Failures are already
// logged by the stores and do not block startup: each store releases its
// readiness gate regardless.
func (c *Container) Hydrate(ctx context.Context) {
	_ = c.NotesStore.Hydrate(ctx)
	_ = c.ThemeStore.Hydrate(ctx)
	_ = c.LanguageStore.Hydrate(ctx)
}

// Ready reports whether every hydrated store has released its gate.
func (c *Container) Ready() bool {
	return c.NotesStore.Ready() && c.ThemeStore.Ready() && c.LanguageStore.Ready()
}
