package question

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/application/question/usecases"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/interfaces/http/handlers/testutil"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/errors"
)

type mockListUC struct {
	result *usecases.ListQuestionsResult
	err    error
	got    usecases.ListQuestionsQuery
}

func (m *mockListUC) Execute(_ context.Context, q usecases.ListQuestionsQuery) (*usecases.ListQuestionsResult, error) {
	m.got = q
	return m.result, m.err
}

type mockSaveNoteUC struct {
	result *usecases.NoteDTO
	err    error
	got    usecases.SaveNoteCommand
}

func (m *mockSaveNoteUC) Execute(_ context.Context, cmd usecases.SaveNoteCommand) (*usecases.NoteDTO, error) {
	m.got = cmd
	return m.result, m.err
}

func TestHandler_ListQuestions_AppliesFilter(t *testing.T) {
	mockUC := &mockListUC{result: &usecases.ListQuestionsResult{
		Questions: []*usecases.QuestionSummaryDTO{{ID: 1, Specialty: "Cardiology"}},
		Total:     1,
		Page:      2,
		PageSize:  10,
	}}
	handler := NewHandler(mockUC, &mockSaveNoteUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/questions", nil)
	testutil.SetAuthContext(c, "user-1")
	testutil.SetQueryParams(c, map[string]string{
		"specialty": "Cardiology",
		"year":      "2023",
		"page":      "2",
		"page_size": "10",
	})

	handler.ListQuestions(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Cardiology"}, mockUC.got.Filter.Specialties)
	assert.Equal(t, []int{2023}, mockUC.got.Filter.Years)
	assert.Equal(t, 2, mockUC.got.Page)
	assert.Equal(t, 10, mockUC.got.PageSize)
}

func TestHandler_ListQuestions_BadYear(t *testing.T) {
	handler := NewHandler(&mockListUC{}, &mockSaveNoteUC{}, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodGet, "/api/questions", nil)
	testutil.SetQueryParams(c, map[string]string{"year": "last"})

	handler.ListQuestions(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_SaveNote_Success(t *testing.T) {
	mockUC := &mockSaveNoteUC{result: &usecases.NoteDTO{QuestionID: 5, Content: "<p>remember</p>"}}
	handler := NewHandler(&mockListUC{}, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/notes/5", map[string]string{"content": "remember"})
	testutil.SetAuthContext(c, "user-1")
	testutil.SetURLParam(c, "question_id", "5")

	handler.SaveNote(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(5), mockUC.got.QuestionID)
	assert.Equal(t, "user-1", mockUC.got.UserID)
}

func TestHandler_SaveNote_UnknownQuestion(t *testing.T) {
	mockUC := &mockSaveNoteUC{err: errors.NewNotFoundError("question not found")}
	handler := NewHandler(&mockListUC{}, mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPut, "/api/notes/999", map[string]string{"content": "x"})
	testutil.SetAuthContext(c, "user-1")
	testutil.SetURLParam(c, "question_id", "999")

	handler.SaveNote(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
