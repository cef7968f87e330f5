package services

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"connecta_backend/internal/gateway"
	"connecta_backend/internal/models"
	"connecta_backend/internal/pkg/email"
	"connecta_backend/internal/repositories"
	"connecta_backend/internal/services/dto"
)

// In-memory repository fakes shared by the service tests.

func newID() string { return uuid.NewString() }

// ---------------- Emitter and notifications ----------------

type emittedEvent struct {
	UserID  string
	Event   string
	Payload interface{}
}

type fakeEmitter struct {
	events []emittedEvent
}

func (f *fakeEmitter) EmitToUser(userID, event string, payload interface{}) {
	f.events = append(f.events, emittedEvent{UserID: userID, Event: event, Payload: payload})
}

func (f *fakeEmitter) eventsFor(userID string) []emittedEvent {
	var out []emittedEvent
	for _, e := range f.events {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

type sentNotification struct {
	UserID string
	Type   string
	Title  string
}

type fakeNotifications struct {
	sent []sentNotification
}

func (f *fakeNotifications) Notify(userID, notifType, title, message string, data map[string]string) {
	f.sent = append(f.sent, sentNotification{UserID: userID, Type: notifType, Title: title})
}

func (f *fakeNotifications) List(string, int, int) (*dto.PagedResponse[dto.NotificationResponse], error) {
	return dto.NewPagedResponse([]dto.NotificationResponse{}, 0, 1, 20), nil
}
func (f *fakeNotifications) UnreadCount(string) (int64, error)  { return 0, nil }
func (f *fakeNotifications) MarkRead(string, string) error      { return nil }
func (f *fakeNotifications) MarkAllRead(string) (int64, error)  { return 0, nil }
func (f *fakeNotifications) Delete(string, string) error        { return nil }

type sentEmail struct {
	To       []string
	Subject  string
	Template string
	Data     email.TemplateData
}

type fakeMailer struct {
	sent []sentEmail
}

func (f *fakeMailer) Send(e *email.Email) error {
	f.sent = append(f.sent, sentEmail{To: e.To, Subject: e.Subject})
	return nil
}

func (f *fakeMailer) SendTemplate(to []string, subject, templateName string, data email.TemplateData) error {
	f.sent = append(f.sent, sentEmail{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (f *fakeMailer) sentTo(address string) []sentEmail {
	var out []sentEmail
	for _, e := range f.sent {
		for _, to := range e.To {
			if to == address {
				out = append(out, e)
			}
		}
	}
	return out
}

// ---------------- Users ----------------

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		if u.ID == "" {
			u.ID = newID()
		}
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) FindByID(id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(user *models.User) error {
	if user.ID == "" {
		user.ID = newID()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Update(user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateReputation(userID string, jss, avgRating float64, totalReviews int, badges []byte) error {
	u, ok := f.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.JobSuccessScore = jss
	u.AverageRating = avgRating
	u.TotalReviews = totalReviews
	u.Badges = datatypes.JSON(badges)
	return nil
}

func (f *fakeUserRepo) VerifyUser(userID string) error                 { return nil }
func (f *fakeUserRepo) Delete(userID string) error                     { delete(f.users, userID); return nil }
func (f *fakeUserRepo) FindByType(models.UserType, int, int) ([]models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) CountByType(models.UserType) (int64, error)     { return 0, nil }
func (f *fakeUserRepo) UpdateLastSeen(string) error                    { return nil }
func (f *fakeUserRepo) AddPushToken(string, string) error              { return nil }
func (f *fakeUserRepo) RemovePushToken(string, string) error           { return nil }
func (f *fakeUserRepo) CreateRefreshToken(*models.RefreshToken) error  { return nil }
func (f *fakeUserRepo) FindRefreshToken(string) (*models.RefreshToken, error) {
	return nil, repositories.ErrUserNotFound
}
func (f *fakeUserRepo) DeleteRefreshToken(string) error      { return nil }
func (f *fakeUserRepo) DeleteUserRefreshTokens(string) error { return nil }
func (f *fakeUserRepo) CleanExpiredRefreshTokens() error     { return nil }
func (f *fakeUserRepo) FindAll(int, int) ([]models.User, error) { return nil, nil }
func (f *fakeUserRepo) CountAll() (int64, error)             { return 0, nil }
func (f *fakeUserRepo) FindWithFilter(repositories.UserFilter) ([]models.User, int64, error) {
	return nil, 0, nil
}

// ---------------- Conversations ----------------

type fakeConversationRepo struct {
	conversations map[string]*models.Conversation
	messages      map[string][]models.Message
	creates       int
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		conversations: make(map[string]*models.Conversation),
		messages:      make(map[string][]models.Message),
	}
}

func (f *fakeConversationRepo) FindByID(id string) (*models.Conversation, error) {
	if c, ok := f.conversations[id]; ok {
		return c, nil
	}
	return nil, repositories.ErrConversationNotFound
}

func (f *fakeConversationRepo) FindByPair(a, b string, projectID *string) (*models.Conversation, error) {
	for _, c := range f.conversations {
		if c.ParticipantA != a || c.ParticipantB != b {
			continue
		}
		if (c.ProjectID == nil) != (projectID == nil) {
			continue
		}
		if projectID != nil && *c.ProjectID != *projectID {
			continue
		}
		return c, nil
	}
	return nil, repositories.ErrConversationNotFound
}

func (f *fakeConversationRepo) Create(c *models.Conversation) error {
	if c.ID == "" {
		c.ID = newID()
	}
	f.creates++
	f.conversations[c.ID] = c
	return nil
}

func (f *fakeConversationRepo) FindByUser(userID string, limit, offset int) ([]models.Conversation, int64, error) {
	var out []models.Conversation
	for _, c := range f.conversations {
		if c.ParticipantA == userID || c.ParticipantB == userID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeConversationRepo) UpdateLastMessage(conversationID, text string, at time.Time) error {
	c, ok := f.conversations[conversationID]
	if !ok {
		return repositories.ErrConversationNotFound
	}
	c.LastMessage = text
	c.LastMessageAt = &at
	return nil
}

func (f *fakeConversationRepo) SetUnreadCounts(conversationID string, counts datatypes.JSONMap) error {
	c, ok := f.conversations[conversationID]
	if !ok {
		return repositories.ErrConversationNotFound
	}
	c.UnreadCounts = counts
	return nil
}

func (f *fakeConversationRepo) CreateMessage(m *models.Message) error {
	if m.ID == "" {
		m.ID = newID()
	}
	f.messages[m.ConversationID] = append(f.messages[m.ConversationID], *m)
	return nil
}

func (f *fakeConversationRepo) FindMessages(conversationID string, limit, offset int) ([]models.Message, int64, error) {
	msgs := f.messages[conversationID]
	return msgs, int64(len(msgs)), nil
}

func (f *fakeConversationRepo) MarkMessagesRead(conversationID, readerID string) (int64, error) {
	var n int64
	msgs := f.messages[conversationID]
	for i := range msgs {
		if msgs[i].ReceiverID == readerID && !msgs[i].IsRead {
			msgs[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (f *fakeConversationRepo) FindMessageByID(id string) (*models.Message, error) {
	for _, msgs := range f.messages {
		for i := range msgs {
			if msgs[i].ID == id {
				return &msgs[i], nil
			}
		}
	}
	return nil, repositories.ErrMessageNotFound
}

func (f *fakeConversationRepo) DeleteMessage(id string) error {
	for cid, msgs := range f.messages {
		for i := range msgs {
			if msgs[i].ID == id {
				f.messages[cid] = append(msgs[:i], msgs[i+1:]...)
				return nil
			}
		}
	}
	return repositories.ErrMessageNotFound
}

// ---------------- Payments ----------------

type fakePaymentRepo struct {
	payments     map[string]*models.Payment
	wallets      map[string]*models.Wallet
	transactions []models.Transaction
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: make(map[string]*models.Payment),
		wallets:  make(map[string]*models.Wallet),
	}
}

func (f *fakePaymentRepo) FindByID(id string) (*models.Payment, error) {
	if p, ok := f.payments[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrPaymentNotFound
}

func (f *fakePaymentRepo) FindByGatewayRef(ref string) (*models.Payment, error) {
	for _, p := range f.payments {
		if p.GatewayRef == ref {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (f *fakePaymentRepo) Create(p *models.Payment) error {
	if p.ID == "" {
		p.ID = newID()
	}
	stored := *p
	f.payments[p.ID] = &stored
	return nil
}

func (f *fakePaymentRepo) Update(p *models.Payment) error {
	stored := *p
	f.payments[p.ID] = &stored
	return nil
}

func (f *fakePaymentRepo) FindByUser(userID string, limit, offset int) ([]models.Payment, int64, error) {
	var out []models.Payment
	for _, p := range f.payments {
		if p.PayerID == userID || p.PayeeID == userID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) FindWallet(userID string) (*models.Wallet, error) {
	if w, ok := f.wallets[userID]; ok {
		return w, nil
	}
	return nil, repositories.ErrWalletNotFound
}

func (f *fakePaymentRepo) CreateWallet(w *models.Wallet) error {
	if w.ID == "" {
		w.ID = newID()
	}
	f.wallets[w.UserID] = w
	return nil
}

func (f *fakePaymentRepo) GetOrCreateWallet(userID string) (*models.Wallet, error) {
	if w, ok := f.wallets[userID]; ok {
		return w, nil
	}
	w := &models.Wallet{UserID: userID, Currency: "USD"}
	w.ID = newID()
	f.wallets[userID] = w
	return w, nil
}

func (f *fakePaymentRepo) CreateTransaction(txn *models.Transaction) error {
	if txn.ID == "" {
		txn.ID = newID()
	}
	f.transactions = append(f.transactions, *txn)
	return nil
}

func (f *fakePaymentRepo) FindTransactions(userID string, limit, offset int) ([]models.Transaction, int64, error) {
	var out []models.Transaction
	for _, t := range f.transactions {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) CompletePayment(fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func (f *fakePaymentRepo) LockPayment(tx *gorm.DB, paymentID string) (*models.Payment, error) {
	if p, ok := f.payments[paymentID]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrPaymentNotFound
}

func (f *fakePaymentRepo) MarkCompleted(tx *gorm.DB, paymentID string, escrow models.EscrowStatus, gatewayResponse []byte) error {
	p, ok := f.payments[paymentID]
	if !ok {
		return repositories.ErrPaymentNotFound
	}
	now := time.Now()
	p.Status = models.PaymentStatusCompleted
	p.EscrowStatus = escrow
	p.CompletedAt = &now
	if gatewayResponse != nil {
		p.GatewayResponse = datatypes.JSON(gatewayResponse)
	}
	return nil
}

func (f *fakePaymentRepo) IncrementWallet(tx *gorm.DB, userID string, deltas repositories.WalletDeltas) error {
	w, ok := f.wallets[userID]
	if !ok {
		return repositories.ErrWalletNotFound
	}
	w.Balance += deltas.Balance
	w.EscrowBalance += deltas.EscrowBalance
	w.TotalSpent += deltas.TotalSpent
	w.TotalEarned += deltas.TotalEarned
	return nil
}

func (f *fakePaymentRepo) WalletBalance(tx *gorm.DB, userID string) (float64, error) {
	w, ok := f.wallets[userID]
	if !ok {
		return 0, repositories.ErrWalletNotFound
	}
	return w.Balance, nil
}

func (f *fakePaymentRepo) RecordTransaction(tx *gorm.DB, txn *models.Transaction) error {
	return f.CreateTransaction(txn)
}

func (f *fakePaymentRepo) UpdateEscrowStatus(tx *gorm.DB, paymentID string, status models.EscrowStatus) error {
	p, ok := f.payments[paymentID]
	if !ok {
		return repositories.ErrPaymentNotFound
	}
	p.EscrowStatus = status
	return nil
}

// ---------------- Gateway and settings ----------------

type fakeGateway struct {
	charges    []*gateway.ChargeRequest
	verify     *gateway.VerifyResponse
	chargeErr  error
	webhookOK  bool
}

func (f *fakeGateway) CreateCharge(req *gateway.ChargeRequest) (*gateway.ChargeResponse, error) {
	f.charges = append(f.charges, req)
	if f.chargeErr != nil {
		return nil, f.chargeErr
	}
	resp := &gateway.ChargeResponse{Status: "success"}
	resp.Data.Link = "https://checkout.test/" + req.TxRef
	return resp, nil
}

func (f *fakeGateway) VerifyTransaction(txRef string) (*gateway.VerifyResponse, error) {
	if f.verify != nil {
		return f.verify, nil
	}
	resp := &gateway.VerifyResponse{Status: "success"}
	resp.Data.TxRef = txRef
	resp.Data.TransactionStatus = "successful"
	return resp, nil
}

func (f *fakeGateway) ValidateWebhookSignature(signature string) bool { return f.webhookOK }

func verifyResponse(txRef string, amount float64, status string) *gateway.VerifyResponse {
	resp := &gateway.VerifyResponse{Status: "success"}
	resp.Data.TxRef = txRef
	resp.Data.Amount = amount
	resp.Data.TransactionStatus = status
	return resp
}

type fakeSettingsRepo struct {
	settings models.PlatformSettings
}

func (f *fakeSettingsRepo) Get() (*models.PlatformSettings, error) {
	copied := f.settings
	return &copied, nil
}

func (f *fakeSettingsRepo) Save(s *models.PlatformSettings) error {
	f.settings = *s
	return nil
}

// ---------------- Contracts, projects, reviews ----------------

type fakeContractRepo struct {
	contracts map[string]*models.Contract
}

func newFakeContractRepo() *fakeContractRepo {
	return &fakeContractRepo{contracts: make(map[string]*models.Contract)}
}

func (f *fakeContractRepo) FindByID(id string) (*models.Contract, error) {
	if c, ok := f.contracts[id]; ok {
		copied := *c
		return &copied, nil
	}
	return nil, repositories.ErrContractNotFound
}

func (f *fakeContractRepo) FindByProject(projectID string) (*models.Contract, error) {
	for _, c := range f.contracts {
		if c.ProjectID == projectID {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repositories.ErrContractNotFound
}

func (f *fakeContractRepo) Create(c *models.Contract) error {
	if c.ID == "" {
		c.ID = newID()
	}
	stored := *c
	f.contracts[c.ID] = &stored
	return nil
}

func (f *fakeContractRepo) Update(c *models.Contract) error {
	stored := *c
	f.contracts[c.ID] = &stored
	return nil
}

func (f *fakeContractRepo) UpdateStatus(contractID string, status models.ContractStatus) error {
	c, ok := f.contracts[contractID]
	if !ok {
		return repositories.ErrContractNotFound
	}
	c.Status = status
	return nil
}

func (f *fakeContractRepo) FindByParticipant(userID string, limit, offset int) ([]models.Contract, int64, error) {
	var out []models.Contract
	for _, c := range f.contracts {
		if c.ClientID == userID || c.FreelancerID == userID {
			out = append(out, *c)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeContractRepo) FindClosedForUser(userID string) ([]models.Contract, error) {
	closed := map[models.ContractStatus]bool{
		models.ContractStatusCompleted:  true,
		models.ContractStatusTerminated: true,
		models.ContractStatusDisputed:   true,
	}
	var out []models.Contract
	for _, c := range f.contracts {
		if c.FreelancerID == userID && closed[c.Status] {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeProjectRepo struct {
	projects map[string]*models.Project
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*models.Project)}
}

func (f *fakeProjectRepo) FindByID(id string) (*models.Project, error) {
	if p, ok := f.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, repositories.ErrProjectNotFound
}

func (f *fakeProjectRepo) Create(p *models.Project) error {
	if p.ID == "" {
		p.ID = newID()
	}
	stored := *p
	f.projects[p.ID] = &stored
	return nil
}

func (f *fakeProjectRepo) Update(p *models.Project) error {
	stored := *p
	f.projects[p.ID] = &stored
	return nil
}

func (f *fakeProjectRepo) UpdateStatus(projectID string, status models.ProjectStatus) error {
	p, ok := f.projects[projectID]
	if !ok {
		return repositories.ErrProjectNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeProjectRepo) MarkCompleted(projectID string) error {
	p, ok := f.projects[projectID]
	if !ok {
		return repositories.ErrProjectNotFound
	}
	now := time.Now()
	p.Status = models.ProjectStatusCompleted
	p.CompletedAt = &now
	return nil
}

func (f *fakeProjectRepo) FindByParticipant(userID string, limit, offset int) ([]models.Project, int64, error) {
	var out []models.Project
	for _, p := range f.projects {
		if p.ClientID == userID || p.FreelancerID == userID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProjectRepo) CountByParticipant(userID string, statuses ...models.ProjectStatus) (int64, error) {
	match := make(map[models.ProjectStatus]bool)
	for _, s := range statuses {
		match[s] = true
	}
	var n int64
	for _, p := range f.projects {
		if (p.ClientID == userID || p.FreelancerID == userID) && (len(match) == 0 || match[p.Status]) {
			n++
		}
	}
	return n, nil
}

type fakeReviewRepo struct {
	reviews map[string]*models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{reviews: make(map[string]*models.Review)}
}

func (f *fakeReviewRepo) FindByID(id string) (*models.Review, error) {
	if r, ok := f.reviews[id]; ok {
		return r, nil
	}
	return nil, repositories.ErrReviewNotFound
}

func (f *fakeReviewRepo) Create(r *models.Review) error {
	for _, existing := range f.reviews {
		if existing.ReviewerID == r.ReviewerID && samePointerValue(existing.ProjectID, r.ProjectID) {
			return repositories.ErrReviewAlreadyExists
		}
	}
	if r.ID == "" {
		r.ID = newID()
	}
	f.reviews[r.ID] = r
	return nil
}

func (f *fakeReviewRepo) FindByReviewee(revieweeID string, limit, offset int) ([]models.Review, int64, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.RevieweeID == revieweeID {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeReviewRepo) FindByReviewerAndProject(reviewerID string, projectID *string) (*models.Review, error) {
	for _, r := range f.reviews {
		if r.ReviewerID == reviewerID && samePointerValue(r.ProjectID, projectID) {
			return r, nil
		}
	}
	return nil, repositories.ErrReviewNotFound
}

func (f *fakeReviewRepo) AverageForReviewee(revieweeID string) (float64, int64, error) {
	var sum float64
	var n int64
	for _, r := range f.reviews {
		if r.RevieweeID == revieweeID && r.ReviewerType == models.UserTypeClient {
			sum += float64(r.Rating)
			n++
		}
	}
	if n == 0 {
		return 0, 0, nil
	}
	return sum / float64(n), n, nil
}

func (f *fakeReviewRepo) FindByProject(projectID string) ([]models.Review, error) {
	var out []models.Review
	for _, r := range f.reviews {
		if r.ProjectID != nil && *r.ProjectID == projectID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func samePointerValue(a, b *string) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	return a == nil || *a == *b
}

// ---------------- Jobs and proposals ----------------

type fakeJobRepo struct {
	jobs map[string]*models.Job
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (f *fakeJobRepo) FindByID(id string) (*models.Job, error) {
	if j, ok := f.jobs[id]; ok {
		copied := *j
		return &copied, nil
	}
	return nil, repositories.ErrJobNotFound
}

func (f *fakeJobRepo) Create(j *models.Job) error {
	if j.ID == "" {
		j.ID = newID()
	}
	stored := *j
	f.jobs[j.ID] = &stored
	return nil
}

func (f *fakeJobRepo) Update(j *models.Job) error {
	stored := *j
	f.jobs[j.ID] = &stored
	return nil
}

func (f *fakeJobRepo) UpdateStatus(jobID string, status models.JobStatus) error {
	j, ok := f.jobs[jobID]
	if !ok {
		return repositories.ErrJobNotFound
	}
	j.Status = status
	return nil
}

func (f *fakeJobRepo) Delete(jobID string) error { delete(f.jobs, jobID); return nil }
func (f *fakeJobRepo) IncrementViews(jobID string) error {
	if j, ok := f.jobs[jobID]; ok {
		j.Views++
	}
	return nil
}

func (f *fakeJobRepo) FindByClient(clientID string, limit, offset int) ([]models.Job, error) {
	var out []models.Job
	for _, j := range f.jobs {
		if j.ClientID == clientID {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) FindWithFilter(criteria repositories.JobFilter) ([]models.Job, int64, error) {
	var out []models.Job
	for _, j := range f.jobs {
		if criteria.Status != "" && j.Status != criteria.Status {
			continue
		}
		out = append(out, *j)
	}
	return out, int64(len(out)), nil
}

func (f *fakeJobRepo) FindExternal(source, externalID string) (*models.Job, error) {
	for _, j := range f.jobs {
		if j.IsExternal && j.Source == source && j.ExternalID == externalID {
			copied := *j
			return &copied, nil
		}
	}
	return nil, repositories.ErrJobNotFound
}

func (f *fakeJobRepo) UpsertExternal(job *models.Job) (*models.Job, bool, error) {
	existing, err := f.FindExternal(job.Source, job.ExternalID)
	if err == nil {
		job.ID = existing.ID
		job.ClientID = existing.ClientID
		stored := *job
		f.jobs[job.ID] = &stored
		return &stored, false, nil
	}
	if err := f.Create(job); err != nil {
		return nil, false, err
	}
	stored := f.jobs[job.ID]
	return stored, true, nil
}

func (f *fakeJobRepo) DeleteExternal(source, externalID string) error {
	j, err := f.FindExternal(source, externalID)
	if err != nil {
		return err
	}
	delete(f.jobs, j.ID)
	return nil
}

func (f *fakeJobRepo) ListExternal(source string, limit, offset int) ([]models.Job, int64, error) {
	var out []models.Job
	for _, j := range f.jobs {
		if j.IsExternal && (source == "" || j.Source == source) {
			out = append(out, *j)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeJobRepo) DeleteExpiredExternal(now time.Time) (int64, error) {
	var n int64
	for id, j := range f.jobs {
		if j.IsExternal && j.Deadline != nil && j.Deadline.Before(now) {
			delete(f.jobs, id)
			n++
		}
	}
	return n, nil
}

type fakeProposalRepo struct {
	proposals map[string]*models.Proposal
	jobs      *fakeJobRepo // hydrates the Job relation like the real preload
}

func newFakeProposalRepo(jobs *fakeJobRepo) *fakeProposalRepo {
	return &fakeProposalRepo{proposals: make(map[string]*models.Proposal), jobs: jobs}
}

func (f *fakeProposalRepo) FindByID(id string) (*models.Proposal, error) {
	if p, ok := f.proposals[id]; ok {
		copied := *p
		if f.jobs != nil {
			if job, err := f.jobs.FindByID(copied.JobID); err == nil {
				copied.Job = job
			}
		}
		return &copied, nil
	}
	return nil, repositories.ErrProposalNotFound
}

func (f *fakeProposalRepo) Create(p *models.Proposal) error {
	for _, existing := range f.proposals {
		if existing.JobID == p.JobID && existing.FreelancerID == p.FreelancerID {
			return repositories.ErrProposalAlreadyExists
		}
	}
	if p.ID == "" {
		p.ID = newID()
	}
	stored := *p
	f.proposals[p.ID] = &stored
	return nil
}

func (f *fakeProposalRepo) UpdateStatus(proposalID string, status models.ProposalStatus) error {
	p, ok := f.proposals[proposalID]
	if !ok {
		return repositories.ErrProposalNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeProposalRepo) FindByJob(jobID string, limit, offset int) ([]models.Proposal, int64, error) {
	var out []models.Proposal
	for _, p := range f.proposals {
		if p.JobID == jobID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProposalRepo) FindByFreelancer(freelancerID string, limit, offset int) ([]models.Proposal, int64, error) {
	var out []models.Proposal
	for _, p := range f.proposals {
		if p.FreelancerID == freelancerID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeProposalRepo) FindByJobAndFreelancer(jobID, freelancerID string) (*models.Proposal, error) {
	for _, p := range f.proposals {
		if p.JobID == jobID && p.FreelancerID == freelancerID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrProposalNotFound
}

func (f *fakeProposalRepo) DeclineSiblings(jobID, acceptedProposalID string) (int64, error) {
	var n int64
	for _, p := range f.proposals {
		if p.JobID == jobID && p.ID != acceptedProposalID && p.Status == models.ProposalStatusPending {
			p.Status = models.ProposalStatusDeclined
			n++
		}
	}
	return n, nil
}

func (f *fakeProposalRepo) CountByJob(jobID string) (int64, error) {
	var n int64
	for _, p := range f.proposals {
		if p.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (f *fakeProposalRepo) CountByFreelancer(freelancerID string, status models.ProposalStatus) (int64, error) {
	var n int64
	for _, p := range f.proposals {
		if p.FreelancerID == freelancerID && p.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeProposalRepo) CountPendingForClient(clientID string) (int64, error) { return 0, nil }

// ---------------- Profiles and matches ----------------

type fakeProfileRepo struct {
	profiles map[string]*models.Profile
}

func newFakeProfileRepo(profiles ...*models.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[string]*models.Profile)}
	for _, p := range profiles {
		if p.ID == "" {
			p.ID = newID()
		}
		repo.profiles[p.UserID] = p
	}
	return repo
}

func (f *fakeProfileRepo) FindByUserID(userID string) (*models.Profile, error) {
	if p, ok := f.profiles[userID]; ok {
		return p, nil
	}
	return nil, repositories.ErrProfileNotFound
}

func (f *fakeProfileRepo) Create(p *models.Profile) error {
	if p.ID == "" {
		p.ID = newID()
	}
	f.profiles[p.UserID] = p
	return nil
}

func (f *fakeProfileRepo) Update(p *models.Profile) error { f.profiles[p.UserID] = p; return nil }
func (f *fakeProfileRepo) Upsert(p *models.Profile) error { return f.Create(p) }

func (f *fakeProfileRepo) SearchFreelancers(criteria repositories.FreelancerFilter) ([]models.Profile, int64, error) {
	wanted := make(map[string]bool, len(criteria.Skills))
	for _, skill := range criteria.Skills {
		wanted[strings.ToLower(skill)] = true
	}

	var out []models.Profile
	for _, p := range f.profiles {
		if len(wanted) == 0 {
			out = append(out, *p)
			continue
		}
		for _, skill := range p.Skills {
			if wanted[strings.ToLower(skill)] {
				out = append(out, *p)
				break
			}
		}
	}
	return out, int64(len(out)), nil
}

type fakeJobMatchRepo struct {
	matches map[string]*models.JobMatch // keyed by user_id/job_id
}

func newFakeJobMatchRepo() *fakeJobMatchRepo {
	return &fakeJobMatchRepo{matches: make(map[string]*models.JobMatch)}
}

func (f *fakeJobMatchRepo) Save(match *models.JobMatch) error {
	key := match.UserID + "/" + match.JobID
	if existing, ok := f.matches[key]; ok {
		existing.Score = match.Score
		return nil
	}
	if match.ID == "" {
		match.ID = newID()
	}
	stored := *match
	f.matches[key] = &stored
	return nil
}

func (f *fakeJobMatchRepo) FindUndelivered(since time.Time) ([]models.JobMatch, error) {
	var out []models.JobMatch
	for _, m := range f.matches {
		if !m.Delivered {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (f *fakeJobMatchRepo) MarkDelivered(ids []string) error {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for _, m := range f.matches {
		if want[m.ID] {
			m.Delivered = true
		}
	}
	return nil
}

func (f *fakeJobMatchRepo) DeleteForJob(jobID string) error {
	for key, m := range f.matches {
		if m.JobID == jobID {
			delete(f.matches, key)
		}
	}
	return nil
}

// ---------------- Collabo ----------------

type fakeCollaboRepo struct {
	projects map[string]*models.CollaboProject
}

func newFakeCollaboRepo() *fakeCollaboRepo {
	return &fakeCollaboRepo{projects: make(map[string]*models.CollaboProject)}
}

func (f *fakeCollaboRepo) FindByID(id string) (*models.CollaboProject, error) {
	if p, ok := f.projects[id]; ok {
		return p, nil
	}
	return nil, repositories.ErrCollaboNotFound
}

func (f *fakeCollaboRepo) Create(p *models.CollaboProject) error {
	if p.ID == "" {
		p.ID = newID()
	}
	for i := range p.Roles {
		if p.Roles[i].ID == "" {
			p.Roles[i].ID = newID()
		}
		p.Roles[i].CollaboProjectID = p.ID
	}
	f.projects[p.ID] = p
	return nil
}

func (f *fakeCollaboRepo) Update(p *models.CollaboProject) error {
	if _, ok := f.projects[p.ID]; !ok {
		return repositories.ErrCollaboNotFound
	}
	f.projects[p.ID] = p
	return nil
}

func (f *fakeCollaboRepo) UpdateStatus(projectID string, status models.CollaboStatus) error {
	p, ok := f.projects[projectID]
	if !ok {
		return repositories.ErrCollaboNotFound
	}
	p.Status = status
	return nil
}

func (f *fakeCollaboRepo) Delete(projectID string) error {
	if _, ok := f.projects[projectID]; !ok {
		return repositories.ErrCollaboNotFound
	}
	delete(f.projects, projectID)
	return nil
}

func (f *fakeCollaboRepo) FindByOwner(ownerID string, limit, offset int) ([]models.CollaboProject, int64, error) {
	var out []models.CollaboProject
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCollaboRepo) FindByMember(userID string, limit, offset int) ([]models.CollaboProject, int64, error) {
	var out []models.CollaboProject
	for _, p := range f.projects {
		member := p.OwnerID == userID
		for i := range p.Roles {
			if id := p.Roles[i].AssigneeID; id != nil && *id == userID {
				member = true
			}
		}
		if member {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCollaboRepo) FindOpen(limit, offset int) ([]models.CollaboProject, int64, error) {
	var out []models.CollaboProject
	for _, p := range f.projects {
		if p.Status == models.CollaboStatusOpen {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeCollaboRepo) SetUnreadCounts(projectID string, counts map[string]interface{}) error {
	p, ok := f.projects[projectID]
	if !ok {
		return repositories.ErrCollaboNotFound
	}
	p.UnreadCounts = counts
	return nil
}

func (f *fakeCollaboRepo) FindRoleByID(roleID string) (*models.CollaboRole, error) {
	for _, p := range f.projects {
		for i := range p.Roles {
			if p.Roles[i].ID == roleID {
				return &p.Roles[i], nil
			}
		}
	}
	return nil, repositories.ErrCollaboRoleNotFound
}

func (f *fakeCollaboRepo) CreateRole(role *models.CollaboRole) error {
	p, ok := f.projects[role.CollaboProjectID]
	if !ok {
		return repositories.ErrCollaboNotFound
	}
	if role.ID == "" {
		role.ID = newID()
	}
	p.Roles = append(p.Roles, *role)
	return nil
}

func (f *fakeCollaboRepo) UpdateRole(role *models.CollaboRole) error {
	for _, p := range f.projects {
		for i := range p.Roles {
			if p.Roles[i].ID == role.ID {
				p.Roles[i] = *role
				return nil
			}
		}
	}
	return repositories.ErrCollaboRoleNotFound
}

func (f *fakeCollaboRepo) AssignRole(roleID, userID string, status models.CollaboRoleStatus) error {
	for _, p := range f.projects {
		for i := range p.Roles {
			if p.Roles[i].ID == roleID {
				assignee := userID
				p.Roles[i].AssigneeID = &assignee
				p.Roles[i].Status = status
				return nil
			}
		}
	}
	return repositories.ErrCollaboRoleNotFound
}

func (f *fakeCollaboRepo) DeleteRole(roleID string) error {
	for _, p := range f.projects {
		for i := range p.Roles {
			if p.Roles[i].ID == roleID {
				p.Roles = append(p.Roles[:i], p.Roles[i+1:]...)
				return nil
			}
		}
	}
	return repositories.ErrCollaboRoleNotFound
}

// badgeList parses the stored badge JSON for assertions.
func badgeList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var out []string
	trimmed := strings.Trim(string(raw), "[]")
	if trimmed == "" {
		return nil
	}
	for _, part := range strings.Split(trimmed, ",") {
		out = append(out, strings.Trim(strings.TrimSpace(part), `"`))
	}
	return out
}
