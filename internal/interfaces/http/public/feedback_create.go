package public

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"

	"go.uber.org/zap"

	"github.com/sngm3741/feedbackpro/api/internal/feedback/application"
	"github.com/sngm3741/feedbackpro/api/internal/interfaces/http/common"
)

func (h *Handler) feedbackCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h.maxUploadBytes > 0 {
			if r.ContentLength > h.maxUploadBytes {
				common.WriteError(r.Context(), h.logger, w, http.StatusRequestEntityTooLarge, "request is too large")
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		}
		if err := r.ParseMultipartForm(common.MaxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				common.WriteError(r.Context(), h.logger, w, http.StatusRequestEntityTooLarge, "request is too large")
				return
			}
			common.WriteError(r.Context(), h.logger, w, http.StatusBadRequest, "invalid form body")
			return
		}
		if r.MultipartForm != nil {
			defer r.MultipartForm.RemoveAll()
		}

		cmd, files, err := decodeFeedbackForm(r)
		defer closeFiles(files)
		if err != nil {
			common.WriteError(r.Context(), h.logger, w, http.StatusBadRequest, "invalid image attachment")
			return
		}

		// The submission runs to completion even if the client goes away.
		ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), common.UploadTimeout)
		defer cancel()

		submission, err := h.intake.Submit(ctx, cmd)
		if err != nil {
			status, body := common.ErrorStatus(err)
			if status >= http.StatusInternalServerError {
				h.logger.Error(r.Context(), "feedback submit failed", zap.Int("status", status), zap.Error(err))
			}
			common.WriteJSON(r.Context(), h.logger, w, status, body)
			return
		}

		common.WriteJSON(r.Context(), h.logger, w, http.StatusCreated, createFeedbackResponse{
			Status:   "created",
			Feedback: common.NewFeedbackResponse(*submission, h.mediaBaseURL),
		})
	}
}

// decodeFeedbackForm maps form values onto the command. Omitted ratings take the form's
// defaults; an overall rating that is not a number becomes 0 so validation rejects it.
func decodeFeedbackForm(r *http.Request) (application.SubmitFeedbackCommand, []multipart.File, error) {
	overall, ok := common.ParseIntDefault(r.FormValue(fieldOverallExperience), defaultOverallExperience)
	if !ok {
		overall = 0
	}

	cmd := application.SubmitFeedbackCommand{
		Name:                r.FormValue(fieldName),
		Contact:             r.FormValue(fieldContact),
		DateOfExperience:    r.FormValue(fieldDateOfExperience),
		DateOfSubmission:    r.FormValue(fieldDateOfSubmission),
		OverallExperience:   overall,
		QualityOfService:    common.DefaultString(r.FormValue(fieldQualityOfService), defaultServiceRating),
		Timeliness:          common.DefaultString(r.FormValue(fieldTimeliness), defaultServiceRating),
		Professionalism:     common.DefaultString(r.FormValue(fieldProfessionalism), defaultServiceRating),
		CommunicationEase:   common.DefaultString(r.FormValue(fieldCommunicationEase), defaultServiceRating),
		LikedMost:           r.FormValue(fieldLikedMost),
		Suggestions:         r.FormValue(fieldSuggestions),
		WouldRecommend:      r.FormValue(fieldWouldRecommend),
		PermissionToPublish: common.ParseFormBool(r.FormValue(fieldPermissionToPublish)),
		CanContactAgain:     common.ParseFormBool(r.FormValue(fieldCanContactAgain)),
	}

	var files []multipart.File
	before, file, err := formAttachment(r, fileBeforeImage)
	if file != nil {
		files = append(files, file)
	}
	if err != nil {
		return cmd, files, err
	}
	after, file, err := formAttachment(r, fileAfterImage)
	if file != nil {
		files = append(files, file)
	}
	if err != nil {
		return cmd, files, err
	}
	cmd.BeforeImage = before
	cmd.AfterImage = after
	return cmd, files, nil
}

func formAttachment(r *http.Request, key string) (*application.Attachment, multipart.File, error) {
	if r.MultipartForm == nil {
		return nil, nil, nil
	}
	file, header, err := r.FormFile(key)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	return &application.Attachment{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, file, nil
}

func closeFiles(files []multipart.File) {
	for _, f := range files {
		_ = f.Close()
	}
}
