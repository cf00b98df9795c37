// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"

	"github.com/haierkeys/note-resource-service/internal/domain"
	"github.com/haierkeys/note-resource-service/internal/dto"
	"github.com/haierkeys/note-resource-service/pkg/code"
	"github.com/haierkeys/note-resource-service/pkg/logger"

	"github.com/jinzhu/copier"
	"go.uber.org/zap"
)

// NoteService 定义笔记业务服务接口
type NoteService interface {
	// List 获取全部笔记
	List(ctx context.Context) ([]*dto.NoteDTO, error)

	// Get 获取单条笔记，不存在时返回 code.ErrorNoteNotFound
	Get(ctx context.Context, id int64) (*dto.NoteDTO, error)

	// Create 创建笔记
	Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// ToggleImportant 翻转 important 标记，不存在时返回 code.ErrorNoteNotFound
	ToggleImportant(ctx context.Context, id int64) (*dto.NoteDTO, error)

	// Delete 删除笔记，不存在时不报错
	Delete(ctx context.Context, id int64) (removed bool, err error)
}

type noteService struct {
	noteRepo domain.NoteRepository
	logger   *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, logger *zap.Logger) NoteService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &noteService{noteRepo: noteRepo, logger: logger}
}

func (s *noteService) List(ctx context.Context) ([]*dto.NoteDTO, error) {
	notes, err := s.noteRepo.List(ctx)
	if err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}

	out := make([]*dto.NoteDTO, 0, len(notes))
	for _, note := range notes {
		d, err := s.toDTO(note)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *noteService) Get(ctx context.Context, id int64) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id)
	}
	return s.toDTO(note)
}

func (s *noteService) Create(ctx context.Context, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	if params == nil || params.Content == "" {
		return nil, code.ErrorContentMissing
	}

	note, err := s.noteRepo.Create(ctx, params.Content, params.Important.Bool())
	if err != nil {
		return nil, s.mapError(err, 0)
	}

	s.logger.Debug("NoteService.Create", zap.Int64(logger.FieldNoteID, note.ID))
	return s.toDTO(note)
}

func (s *noteService) ToggleImportant(ctx context.Context, id int64) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.ToggleImportant(ctx, id)
	if err != nil {
		return nil, s.mapError(err, id)
	}

	s.logger.Debug("NoteService.ToggleImportant",
		zap.Int64(logger.FieldNoteID, note.ID),
		zap.Bool("important", note.Important),
	)
	return s.toDTO(note)
}

func (s *noteService) Delete(ctx context.Context, id int64) (bool, error) {
	removed, err := s.noteRepo.DeleteByID(ctx, id)
	if err != nil {
		return false, s.mapError(err, id)
	}

	s.logger.Debug("NoteService.Delete", zap.Int64(logger.FieldNoteID, id), zap.Bool("removed", removed))
	return removed, nil
}

func (s *noteService) toDTO(note *domain.Note) (*dto.NoteDTO, error) {
	out := &dto.NoteDTO{}
	if err := copier.Copy(out, note); err != nil {
		return nil, code.ErrorServerInternal.WithDetails(err.Error())
	}
	return out, nil
}

// mapError 将仓储错误转换为业务错误码
func (s *noteService) mapError(err error, id int64) error {
	if errors.Is(err, domain.ErrNoteNotFound) {
		return code.ErrorNoteNotFound
	}
	s.logger.Error("note repository error", zap.Int64(logger.FieldNoteID, id), zap.Error(err))
	return code.ErrorServerInternal.WithDetails(err.Error())
}
