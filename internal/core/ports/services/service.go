package services

// ServiceContainer holds instances of all application services. Handlers
// receive it at route registration time.
type ServiceContainer struct {
	User     UserSvcFacade
	Entry    EntrySvcFacade
	Prompt   PromptSvcFacade
	Streak   StreakSvcFacade
	Suggest  SuggestSvcFacade
	Reminder ReminderSvcFacade
}
