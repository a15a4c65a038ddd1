package service

import (
	"EmployeeManager/internal/model"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const fileID = "0b9d3f4e-52a1-4c1f-9a57-1f5e2c7d8a10"

var pdfBytes = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\ntrailer\n<<>>\n%%EOF\n")

func newFileService(t *testing.T, maxMB int) (*FileService, *mockEmployeeRepo, *mockAttachmentRepo, *mockBlobRepo) {
	t.Helper()
	er := new(mockEmployeeRepo)
	ar := new(mockAttachmentRepo)
	br := new(mockBlobRepo)
	return NewFileService(er, ar, br, maxMB, zap.NewNop().Sugar()), er, ar, br
}

func TestResolveMimeType(t *testing.T) {
	assert.Equal(t, "image/png", resolveMimeType("image/png", nil))
	assert.Equal(t, "text/plain", resolveMimeType("text/plain; charset=utf-8", nil))
	assert.Equal(t, "application/pdf", resolveMimeType("", pdfBytes))
	assert.Equal(t, "application/pdf", resolveMimeType("application/octet-stream", pdfBytes))
	assert.Equal(t, "application/zip", resolveMimeType("", []byte("PK\x03\x04\x14\x00\x00\x00\x08\x00")))
}

func TestFileService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("ok sniffs type and names file", func(t *testing.T) {
		svc, er, ar, br := newFileService(t, 10)
		er.On("Exists", mock.Anything, "EMP001").Return(true, nil).Once()
		br.On("Put", mock.Anything, mock.AnythingOfType("*model.Blob")).
			Run(func(args mock.Arguments) { args.Get(1).(*model.Blob).ID = "blob-1" }).
			Return(nil).Once()
		ar.On("Create", mock.Anything, mock.MatchedBy(func(a *model.Attachment) bool {
			return a.BlobID == "blob-1" && a.EmployeeID == "EMP001"
		})).Return(nil).Once()

		a, err := svc.Upload(ctx, UploadInput{
			EmployeeID: "emp001",
			FileName:   "../Contract.PDF",
			MimeType:   "application/octet-stream",
			Data:       pdfBytes,
		})
		require.NoError(t, err)
		assert.Equal(t, "application/pdf", a.MimeType)
		assert.Equal(t, "Contract.PDF", a.OriginalName)
		assert.True(t, strings.HasPrefix(a.FileName, "EMP001_"))
		assert.True(t, strings.HasSuffix(a.FileName, ".pdf"))
		assert.Equal(t, int64(len(pdfBytes)), a.Size)
		ar.AssertExpectations(t)
		br.AssertExpectations(t)
	})

	t.Run("unknown employee", func(t *testing.T) {
		svc, er, _, br := newFileService(t, 10)
		er.On("Exists", mock.Anything, "EMP404").Return(false, nil).Once()
		_, err := svc.Upload(ctx, UploadInput{EmployeeID: "EMP404", FileName: "a.pdf", Data: pdfBytes})
		assert.ErrorIs(t, err, ErrEmployeeNotFound)
		br.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("rejected content", func(t *testing.T) {
		svc, er, _, br := newFileService(t, 1)
		er.On("Exists", mock.Anything, "EMP001").Return(true, nil)

		_, err := svc.Upload(ctx, UploadInput{EmployeeID: "EMP001", FileName: "a.zip", Data: []byte("PK\x03\x04\x14\x00\x00\x00")})
		assert.ErrorIs(t, err, ErrUnsupportedMediaType)

		big := bytes.Repeat([]byte("a"), 1<<20+1)
		_, err = svc.Upload(ctx, UploadInput{EmployeeID: "EMP001", FileName: "a.txt", MimeType: "text/plain", Data: big})
		assert.ErrorIs(t, err, ErrFileTooLarge)
		assert.True(t, IsValidation(err))

		_, err = svc.Upload(ctx, UploadInput{EmployeeID: "EMP001", FileName: "a.txt", MimeType: "text/plain"})
		assert.ErrorIs(t, err, ErrEmptyFile)

		br.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
	})

	t.Run("exactly at limit is accepted", func(t *testing.T) {
		svc, er, ar, br := newFileService(t, 1)
		er.On("Exists", mock.Anything, "EMP001").Return(true, nil).Once()
		br.On("Put", mock.Anything, mock.Anything).Return(nil).Once()
		ar.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

		data := append([]byte{}, pdfBytes...)
		data = append(data, bytes.Repeat([]byte(" "), 1<<20-len(data))...)
		_, err := svc.Upload(ctx, UploadInput{EmployeeID: "EMP001", FileName: "a.pdf", MimeType: "application/pdf", Data: data})
		assert.NoError(t, err)
	})

	t.Run("metadata failure removes blob", func(t *testing.T) {
		svc, er, ar, br := newFileService(t, 10)
		er.On("Exists", mock.Anything, "EMP001").Return(true, nil).Once()
		br.On("Put", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { args.Get(1).(*model.Blob).ID = "blob-2" }).
			Return(nil).Once()
		ar.On("Create", mock.Anything, mock.Anything).Return(errors.New("insert failed")).Once()
		br.On("Delete", mock.Anything, "blob-2").Return(nil).Once()

		_, err := svc.Upload(ctx, UploadInput{EmployeeID: "EMP001", FileName: "a.pdf", MimeType: "application/pdf", Data: pdfBytes})
		require.Error(t, err)
		assert.False(t, IsValidation(err))
		br.AssertExpectations(t)
	})
}

func TestFileService_DownloadPreview(t *testing.T) {
	ctx := context.Background()

	t.Run("download returns bytes", func(t *testing.T) {
		svc, _, ar, br := newFileService(t, 10)
		ar.On("GetByID", mock.Anything, fileID).Return(&model.Attachment{ID: fileID, BlobID: "b1", MimeType: "text/plain"}, nil).Once()
		br.On("Get", mock.Anything, "b1").Return(&model.Blob{ID: "b1", Data: []byte("hello")}, nil).Once()

		fc, err := svc.Download(ctx, fileID)
		require.NoError(t, err)
		assert.Equal(t, []byte("hello"), fc.Data)
	})

	t.Run("preview refuses text", func(t *testing.T) {
		svc, _, ar, br := newFileService(t, 10)
		ar.On("GetByID", mock.Anything, fileID).Return(&model.Attachment{ID: fileID, BlobID: "b1", MimeType: "text/plain"}, nil).Once()

		_, err := svc.Preview(ctx, fileID)
		assert.ErrorIs(t, err, ErrNotPreviewable)
		br.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	})

	t.Run("missing content", func(t *testing.T) {
		svc, _, ar, br := newFileService(t, 10)
		ar.On("GetByID", mock.Anything, fileID).Return(&model.Attachment{ID: fileID, BlobID: "b1", MimeType: "image/png"}, nil).Once()
		br.On("Get", mock.Anything, "b1").Return(nil, gorm.ErrRecordNotFound).Once()

		_, err := svc.Preview(ctx, fileID)
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		svc, _, ar, _ := newFileService(t, 10)
		_, err := svc.Download(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrFileNotFound)
		ar.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

func TestFileService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		svc, _, ar, br := newFileService(t, 10)
		ar.On("GetByID", mock.Anything, fileID).Return(&model.Attachment{ID: fileID, BlobID: "b1"}, nil).Once()
		br.On("Delete", mock.Anything, "b1").Return(nil).Once()
		ar.On("Delete", mock.Anything, fileID).Return(int64(1), nil).Once()

		require.NoError(t, svc.Delete(ctx, fileID))
		ar.AssertExpectations(t)
		br.AssertExpectations(t)
	})

	t.Run("unknown", func(t *testing.T) {
		svc, _, ar, br := newFileService(t, 10)
		ar.On("GetByID", mock.Anything, fileID).Return(nil, gorm.ErrRecordNotFound).Once()

		assert.ErrorIs(t, svc.Delete(ctx, fileID), ErrFileNotFound)
		br.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
