package document

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"sba-portal/internal/domain/apperr"
	"sba-portal/internal/domain/auth"
	domain "sba-portal/internal/domain/document"
	"sba-portal/pkg/id"
)

const signConcurrency = 8

type Usecase struct {
	docs      domain.Repository
	blobs     domain.BlobStore
	checklist domain.Checklist
	cfg       Config
	allowed   map[string]struct{}
	log       logrus.FieldLogger
	now       func() time.Time
}

func NewUsecase(docs domain.Repository, blobs domain.BlobStore, checklist domain.Checklist, cfg Config, log logrus.FieldLogger) *Usecase {
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMETypes))
	for _, m := range cfg.AllowedMIMETypes {
		allowed[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	return &Usecase{
		docs:      docs,
		blobs:     blobs,
		checklist: checklist,
		cfg:       cfg,
		allowed:   allowed,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Upload stores the file and then its metadata. A failed metadata write
// removes the stored file again; if that removal fails too the caller gets
// ErrStorageInconsistency.
func (u *Usecase) Upload(ctx context.Context, actor auth.Actor, in UploadInput) (*domain.Document, error) {
	if err := actor.Require(auth.RoleBorrower); err != nil {
		return nil, err
	}
	contentType, err := u.validate(in)
	if err != nil {
		return nil, err
	}

	now := u.now()
	docID := id.NewID32()
	name := SanitizeFileName(in.FileName)
	key := blobKey(actor.UserID, docID, name, now)
	log := u.log.WithFields(logrus.Fields{"owner_id": actor.UserID, "path": key, "category": in.Category})

	if err := u.blobs.Put(ctx, key, contentType, in.Size, in.Body); err != nil {
		return nil, fmt.Errorf("store file: %w", err)
	}

	d := &domain.Document{
		DocumentID:  docID,
		OwnerID:     actor.UserID,
		Category:    in.Category,
		FileName:    name,
		FilePath:    key,
		ContentType: contentType,
		SizeBytes:   in.Size,
		Status:      domain.StatusUploaded,
		UploadedAt:  now,
	}
	if err := u.docs.Create(ctx, d); err != nil {
		// the request context may already be done; cleanup must still run
		if cerr := u.blobs.Delete(context.WithoutCancel(ctx), key); cerr != nil {
			log.WithError(cerr).Error("orphaned file left in storage")
			return nil, errors.Join(apperr.ErrStorageInconsistency,
				fmt.Errorf("record document: %w", err),
				fmt.Errorf("remove orphaned file %s: %w", key, cerr))
		}
		log.WithError(err).Warn("document record failed, file removed")
		return nil, fmt.Errorf("record document: %w", err)
	}
	log.WithField("document_id", d.DocumentID).Info("document uploaded")
	return d, nil
}

// blobKey is unique per document, so two uploads of the same file name in
// the same millisecond never share an object.
func blobKey(ownerID, documentID, name string, at time.Time) string {
	return fmt.Sprintf("%s/%d_%s_%s", ownerID, at.UnixMilli(), documentID, name)
}

func (u *Usecase) validate(in UploadInput) (string, error) {
	if !u.checklist.Allows(in.Category) {
		return "", fmt.Errorf("%w: unknown document category %q", apperr.ErrInvalidInput, in.Category)
	}
	mt, _, err := mime.ParseMediaType(in.ContentType)
	if err != nil {
		return "", fmt.Errorf("%w: bad content type %q", apperr.ErrInvalidInput, in.ContentType)
	}
	if _, ok := u.allowed[mt]; !ok {
		return "", fmt.Errorf("%w: file type %s is not accepted", apperr.ErrInvalidInput, mt)
	}
	if in.Size <= 0 {
		return "", fmt.Errorf("%w: empty file", apperr.ErrInvalidInput)
	}
	if u.cfg.MaxUploadBytes > 0 && in.Size > u.cfg.MaxUploadBytes {
		return "", fmt.Errorf("%w: file is %d bytes, limit is %d", apperr.ErrInvalidInput, in.Size, u.cfg.MaxUploadBytes)
	}
	if in.Body == nil {
		return "", fmt.Errorf("%w: missing file body", apperr.ErrInvalidInput)
	}
	return mt, nil
}

// SanitizeFileName keeps the base name and replaces anything outside
// [A-Za-z0-9._-] with an underscore.
func SanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "file"
	}
	return out
}

// Delete removes the file first, then the record. A failure after the file
// is gone is reported as ErrStorageInconsistency.
func (u *Usecase) Delete(ctx context.Context, actor auth.Actor, documentID string) error {
	if err := actor.Require(auth.RoleBorrower); err != nil {
		return err
	}
	d, err := u.docs.GetByDocumentID(ctx, documentID)
	if err != nil {
		return err
	}
	if d.OwnerID != actor.UserID {
		return fmt.Errorf("%w: document belongs to another borrower", apperr.ErrUnauthorized)
	}
	log := u.log.WithFields(logrus.Fields{"document_id": d.DocumentID, "path": d.FilePath})

	if err := u.blobs.Delete(ctx, d.FilePath); err != nil {
		return fmt.Errorf("remove file: %w", err)
	}
	if err := u.docs.Delete(context.WithoutCancel(ctx), d); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		log.WithError(err).Error("file removed but document record remains")
		return errors.Join(apperr.ErrStorageInconsistency, fmt.Errorf("delete document record: %w", err))
	}
	log.Info("document deleted")
	return nil
}

func (u *Usecase) Approve(ctx context.Context, actor auth.Actor, documentID string) (*ReviewResult, error) {
	return u.review(ctx, actor, documentID, domain.StatusApproved)
}

func (u *Usecase) Reject(ctx context.Context, actor auth.Actor, documentID string) (*ReviewResult, error) {
	return u.review(ctx, actor, documentID, domain.StatusRejected)
}

func (u *Usecase) review(ctx context.Context, actor auth.Actor, documentID string, target domain.Status) (*ReviewResult, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	d, err := u.docs.GetByDocumentID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	changed, err := d.Decide(target, actor.UserID, u.now())
	if err != nil {
		return nil, err
	}
	if changed {
		if err := u.docs.Save(ctx, d); err != nil {
			return nil, fmt.Errorf("save document: %w", err)
		}
		u.log.WithFields(logrus.Fields{"document_id": d.DocumentID, "status": d.Status, "reviewer": actor.UserID}).Info("document reviewed")
	}
	return &ReviewResult{Document: d, Changed: changed}, nil
}

func (u *Usecase) ListMine(ctx context.Context, actor auth.Actor) ([]domain.Document, error) {
	if err := actor.Require(auth.RoleBorrower); err != nil {
		return nil, err
	}
	docs, err := u.docs.ListByOwner(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

func (u *Usecase) Checklist(ctx context.Context, actor auth.Actor) (*ChecklistDTO, error) {
	docs, err := u.ListMine(ctx, actor)
	if err != nil {
		return nil, err
	}
	ev := u.checklist.Evaluate(docs)
	cats := make([]CategoryStatus, 0, len(u.checklist.Required)+len(u.checklist.Optional))
	for _, c := range u.checklist.Required {
		cats = append(cats, CategoryStatus{Name: c, Required: true, Count: ev.Counts[c]})
	}
	for _, c := range u.checklist.Optional {
		cats = append(cats, CategoryStatus{Name: c, Count: ev.Counts[c]})
	}
	return &ChecklistDTO{Categories: cats, Evaluation: ev}, nil
}

// ListForReview returns a borrower's documents with short-lived download
// links. A link that fails to sign is left empty.
func (u *Usecase) ListForReview(ctx context.Context, actor auth.Actor, ownerID string) ([]ReviewItem, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	docs, err := u.docs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return u.withURLs(ctx, docs), nil
}

// ListQueue returns every borrower's documents, newest first, optionally
// narrowed to one status.
func (u *Usecase) ListQueue(ctx context.Context, actor auth.Actor, status string) ([]ReviewItem, error) {
	if err := actor.Require(auth.RoleAdmin); err != nil {
		return nil, err
	}
	st := domain.Status(strings.ToLower(strings.TrimSpace(status)))
	switch st {
	case "", domain.StatusUploaded, domain.StatusApproved, domain.StatusRejected:
	default:
		return nil, fmt.Errorf("%w: unknown document status %q", apperr.ErrInvalidInput, status)
	}
	docs, err := u.docs.ListAll(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return u.withURLs(ctx, docs), nil
}

func (u *Usecase) withURLs(ctx context.Context, docs []domain.Document) []ReviewItem {
	items := make([]ReviewItem, len(docs))
	var g errgroup.Group
	g.SetLimit(signConcurrency)
	for i := range docs {
		items[i].Document = docs[i]
		g.Go(func() error {
			url, err := u.blobs.SignedURL(ctx, docs[i].FilePath, u.cfg.SignedURLTTL)
			if err != nil {
				u.log.WithError(err).WithField("document_id", docs[i].DocumentID).Warn("sign document url failed")
				return nil
			}
			items[i].URL = url
			return nil
		})
	}
	_ = g.Wait()
	return items
}
