package domain

import "sort"

// Snapshot is the point-in-time copy of an induction's structure taken
// when a submission is created. It is the single source of truth for what
// chapters and questions exist in that attempt: grading and completion
// checks always iterate the snapshot, never the live induction, except
// when reconciling newly added chapters.
type Snapshot struct {
	Induction SnapshotInduction `json:"induction"`
	Chapters  []SnapshotChapter `json:"chapters"`
}

type SnapshotInduction struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SnapshotChapter struct {
	ID             string             `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description"`
	VideoURL       *string            `json:"video_url"`
	VideoPath      *string            `json:"video_path"`
	VideoFilename  *string            `json:"video_filename"`
	VideoDuration  *int               `json:"video_duration"`
	DisplayOrder   int                `json:"display_order"`
	PassPercentage int                `json:"pass_percentage"`
	Questions      []SnapshotQuestion `json:"questions"`
}

type SnapshotQuestion struct {
	ID            string       `json:"id"`
	QuestionText  string       `json:"question_text"`
	Type          QuestionType `json:"type"`
	Options       []Option     `json:"options"`
	CorrectAnswer []string     `json:"correct_answer"`
	DisplayOrder  int          `json:"display_order"`
}

// VideoURLResolver turns a stored file key into a publicly resolvable
// URL. Storage URLs depend on runtime config, so resolution is repeated
// at read time rather than baked in once.
type VideoURLResolver func(path string) string

// BuildSnapshot materializes the induction's current chapter/question
// structure. Chapters and questions are expected in display_order (the
// repository loads them that way). Correct answers are included so a
// submission can be graded self-contained later.
func BuildSnapshot(induction *Induction, resolve VideoURLResolver) Snapshot {
	snapshot := Snapshot{
		Induction: SnapshotInduction{
			ID:          induction.ID,
			Title:       induction.Title,
			Description: induction.Description,
		},
		Chapters: make([]SnapshotChapter, 0, len(induction.Chapters)),
	}
	for i := range induction.Chapters {
		snapshot.Chapters = append(snapshot.Chapters, BuildChapterSnapshot(&induction.Chapters[i], resolve))
	}
	return snapshot
}

// BuildChapterSnapshot builds the snapshot fragment for a single chapter,
// in the same shape BuildSnapshot produces. An uploaded file wins over an
// external URL; pass_percentage defaults when unset.
func BuildChapterSnapshot(chapter *Chapter, resolve VideoURLResolver) SnapshotChapter {
	var videoURL *string
	if chapter.VideoPath != "" {
		resolved := resolve(chapter.VideoPath)
		videoURL = &resolved
	} else if chapter.VideoURL != "" {
		u := chapter.VideoURL
		videoURL = &u
	}

	passPercentage := chapter.PassPercentage
	if passPercentage == 0 {
		passPercentage = DefaultPassPercentage
	}

	sc := SnapshotChapter{
		ID:             chapter.ID,
		Title:          chapter.Title,
		Description:    chapter.Description,
		VideoURL:       videoURL,
		DisplayOrder:   chapter.DisplayOrder,
		PassPercentage: passPercentage,
		Questions:      make([]SnapshotQuestion, 0, len(chapter.Questions)),
	}
	if chapter.VideoPath != "" {
		p := chapter.VideoPath
		sc.VideoPath = &p
	}
	if chapter.VideoFilename != "" {
		f := chapter.VideoFilename
		sc.VideoFilename = &f
	}
	if chapter.VideoDuration > 0 {
		d := chapter.VideoDuration
		sc.VideoDuration = &d
	}

	for _, q := range chapter.Questions {
		sc.Questions = append(sc.Questions, SnapshotQuestion{
			ID:            q.ID,
			QuestionText:  q.QuestionText,
			Type:          q.Type,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			DisplayOrder:  q.DisplayOrder,
		})
	}
	return sc
}

// ChapterIDSet returns the ids of the chapters captured in the snapshot.
func (s *Snapshot) ChapterIDSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Chapters))
	for _, c := range s.Chapters {
		set[c.ID] = struct{}{}
	}
	return set
}

// QuestionIDSet returns the ids of every question captured in the
// snapshot, across all chapters.
func (s *Snapshot) QuestionIDSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Chapters))
	for _, c := range s.Chapters {
		for _, q := range c.Questions {
			set[q.ID] = struct{}{}
		}
	}
	return set
}

// NewChapterIDs returns the ids present in the live chapter list but
// absent from the snapshot, preserving the live ordering. Chapters
// removed from the induction are not reported: removal does not
// retroactively invalidate a prior attempt.
func (s *Snapshot) NewChapterIDs(liveChapterIDs []string) []string {
	existing := s.ChapterIDSet()
	var added []string
	for _, id := range liveChapterIDs {
		if _, ok := existing[id]; !ok {
			added = append(added, id)
		}
	}
	return added
}

// MergeChapters appends the given snapshot fragments to the chapter list
// and re-sorts the merged list by display_order. The sort is stable, so
// on display_order ties existing chapters keep their relative order with
// new entries following.
func (s Snapshot) MergeChapters(added []SnapshotChapter) Snapshot {
	merged := make([]SnapshotChapter, 0, len(s.Chapters)+len(added))
	merged = append(merged, s.Chapters...)
	merged = append(merged, added...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].DisplayOrder < merged[j].DisplayOrder
	})
	s.Chapters = merged
	return s
}

// QuestionCount returns the total number of questions across all
// snapshot chapters.
func (s *Snapshot) QuestionCount() int {
	n := 0
	for _, c := range s.Chapters {
		n += len(c.Questions)
	}
	return n
}
