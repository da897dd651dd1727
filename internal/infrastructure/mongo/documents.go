package mongo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/domain"
)

// FeedbackDocument は MongoDB 上のフィードバック 1 件分のスキーマ。
type FeedbackDocument struct {
	ID                  primitive.ObjectID `bson:"_id"`
	Name                string             `bson:"name"`
	Contact             string             `bson:"contact"`
	DateOfExperience    string             `bson:"dateOfExperience"`
	DateOfSubmission    string             `bson:"dateOfSubmission"`
	BeforeImageKey      string             `bson:"beforeImageKey,omitempty"`
	AfterImageKey       string             `bson:"afterImageKey,omitempty"`
	OverallExperience   int                `bson:"overallExperience"`
	QualityOfService    string             `bson:"qualityOfService"`
	Timeliness          string             `bson:"timeliness"`
	Professionalism     string             `bson:"professionalism"`
	CommunicationEase   string             `bson:"communicationEase"`
	LikedMost           string             `bson:"likedMost"`
	Suggestions         string             `bson:"suggestions"`
	WouldRecommend      string             `bson:"wouldRecommend"`
	PermissionToPublish bool               `bson:"permissionToPublish"`
	CanContactAgain     bool               `bson:"canContactAgain"`
	CreatedAt           time.Time          `bson:"createdAt"`
}

func mapSubmissionToDocument(s *domain.Submission) FeedbackDocument {
	return FeedbackDocument{
		Name:                s.Name,
		Contact:             s.Contact.String(),
		DateOfExperience:    s.DateOfExperience.String(),
		DateOfSubmission:    s.DateOfSubmission.String(),
		BeforeImageKey:      s.BeforeImageKey.String(),
		AfterImageKey:       s.AfterImageKey.String(),
		OverallExperience:   s.OverallExperience.Int(),
		QualityOfService:    s.QualityOfService.String(),
		Timeliness:          s.Timeliness.String(),
		Professionalism:     s.Professionalism.String(),
		CommunicationEase:   s.CommunicationEase.String(),
		LikedMost:           s.LikedMost,
		Suggestions:         s.Suggestions,
		WouldRecommend:      s.WouldRecommend,
		PermissionToPublish: s.PermissionToPublish,
		CanContactAgain:     s.CanContactAgain,
		CreatedAt:           s.CreatedAt,
	}
}

// mapFeedbackDocument は保存済みドキュメントをドメインへ復元する。
// 評価値は再検証するが、連絡先は保存時点のルールで検証済みなのでそのまま使う。
func mapFeedbackDocument(doc FeedbackDocument) (domain.Submission, error) {
	overall, err := domain.NewOverallRating(doc.OverallExperience)
	if err != nil {
		return domain.Submission{}, fmt.Errorf("feedback %s: %w", doc.ID.Hex(), err)
	}
	ratings := make([]domain.ServiceRating, 0, 4)
	for _, value := range []string{doc.QualityOfService, doc.Timeliness, doc.Professionalism, doc.CommunicationEase} {
		rating, err := domain.NewServiceRating(value)
		if err != nil {
			return domain.Submission{}, fmt.Errorf("feedback %s: %w", doc.ID.Hex(), err)
		}
		ratings = append(ratings, rating)
	}

	return domain.Submission{
		ID:                  doc.ID.Hex(),
		Name:                doc.Name,
		Contact:             domain.Contact(doc.Contact),
		DateOfExperience:    domain.CalendarDate(doc.DateOfExperience),
		DateOfSubmission:    domain.CalendarDate(doc.DateOfSubmission),
		BeforeImageKey:      domain.BlobKey(doc.BeforeImageKey),
		AfterImageKey:       domain.BlobKey(doc.AfterImageKey),
		OverallExperience:   overall,
		QualityOfService:    ratings[0],
		Timeliness:          ratings[1],
		Professionalism:     ratings[2],
		CommunicationEase:   ratings[3],
		LikedMost:           doc.LikedMost,
		Suggestions:         doc.Suggestions,
		WouldRecommend:      doc.WouldRecommend,
		PermissionToPublish: doc.PermissionToPublish,
		CanContactAgain:     doc.CanContactAgain,
		CreatedAt:           doc.CreatedAt.UTC(),
	}, nil
}
