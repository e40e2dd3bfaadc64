package service

var (
	IEntryService     = &EntryServiceImpl{}
	IAlertService     = &AlertServiceImpl{}
	IMailService      = &MailServiceImpl{}
	IRecommendService = &RecommendServiceImpl{}
	ISasService       = &SasServiceImpl{}
	IUploadJobService = &UploadJobServiceImpl{}
)
