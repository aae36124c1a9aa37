package store_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/store"
)

var _ = Describe("SnapshotStore", func() {
	var (
		ctx context.Context
		db  *sql.DB
		dir string
		s   *store.SnapshotStore
	)

	BeforeEach(func() {
		ctx = context.Background()
		dir = GinkgoT().TempDir()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db, dir).Snapshots()
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	It("should derive the path from the key", func() {
		Expect(s.PathFor("abc")).To(Equal(filepath.Join(dir, "abc.parquet")))
	})

	Context("Put and Get", func() {
		// Given a dataset with every supported kind
		// When we write it and read it back
		// Then the schema and values should be equivalent
		It("should round trip a dataset", func() {
			// Arrange
			day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
			ds := models.NewDataset(
				[]string{"region", "amount", "qty", "day", "active"},
				[][]any{
					{"emea", 10.5, 1, day, true},
					{"apac", nil, 2, day.Add(24 * time.Hour), false},
					{nil, 3.25, nil, nil, nil},
				},
			)

			// Act
			path, err := s.Put(ctx, "k1", ds)
			Expect(err).NotTo(HaveOccurred())
			got, ok := s.Get(ctx, "k1")

			// Assert
			Expect(path).To(Equal(s.PathFor("k1")))
			Expect(ok).To(BeTrue())
			Expect(got.ColumnNames()).To(Equal(ds.ColumnNames()))
			Expect(got.NumRows()).To(Equal(3))
			for i, c := range got.Columns {
				Expect(c.Kind).To(Equal(ds.Columns[i].Kind), c.Name)
			}
			Expect(got.Values("region")).To(Equal([]any{"emea", "apac", nil}))
			Expect(got.Values("amount")).To(Equal([]any{10.5, nil, 3.25}))
			Expect(got.Values("qty")).To(Equal([]any{int64(1), int64(2), nil}))
			Expect(got.Values("active")).To(Equal([]any{true, false, nil}))
			Expect(got.Values("day")[1].(time.Time).Equal(day.Add(24 * time.Hour))).To(BeTrue())
		})

		It("should round trip an empty dataset with its columns", func() {
			ds := models.NewTypedDataset([]models.Column{{Name: "a", Kind: models.KindNumeric}}, nil)

			_, err := s.Put(ctx, "empty", ds)
			Expect(err).NotTo(HaveOccurred())
			got, ok := s.Get(ctx, "empty")

			Expect(ok).To(BeTrue())
			Expect(got.IsEmpty()).To(BeTrue())
			Expect(got.ColumnNames()).To(Equal([]string{"a"}))
		})

		It("should replace an existing snapshot", func() {
			_, err := s.Put(ctx, "k", models.NewDataset([]string{"v"}, [][]any{{1}}))
			Expect(err).NotTo(HaveOccurred())
			_, err = s.Put(ctx, "k", models.NewDataset([]string{"w"}, [][]any{{"x"}, {"y"}}))
			Expect(err).NotTo(HaveOccurred())

			got, ok := s.Get(ctx, "k")

			Expect(ok).To(BeTrue())
			Expect(got.ColumnNames()).To(Equal([]string{"w"}))
			Expect(got.NumRows()).To(Equal(2))
			leftovers, _ := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
			Expect(leftovers).To(BeEmpty())
		})

		It("should write large datasets in batches", func() {
			rows := make([][]any, 1000)
			for i := range rows {
				rows[i] = []any{i}
			}

			_, err := s.Put(ctx, "big", models.NewDataset([]string{"i"}, rows))
			Expect(err).NotTo(HaveOccurred())
			got, ok := s.Get(ctx, "big")

			Expect(ok).To(BeTrue())
			Expect(got.NumRows()).To(Equal(1000))
		})

		It("should reject datasets without columns", func() {
			_, err := s.Put(ctx, "none", models.NewDataset(nil, nil))
			Expect(err).To(HaveOccurred())
		})

		It("should report a missing snapshot as absent", func() {
			_, ok := s.Get(ctx, "missing")
			Expect(ok).To(BeFalse())
		})

		// Given a corrupt snapshot file
		// When we read it
		// Then it should be treated as a miss
		It("should report a corrupt snapshot as absent", func() {
			Expect(os.WriteFile(s.PathFor("bad"), []byte("not parquet"), 0o644)).To(Succeed())

			_, ok := s.Get(ctx, "bad")

			Expect(ok).To(BeFalse())
		})
	})

	Context("Delete and ClearAll", func() {
		BeforeEach(func() {
			for _, k := range []string{"a", "b", "c"} {
				_, err := s.Put(ctx, k, models.NewDataset([]string{"v"}, [][]any{{1}}))
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644)).To(Succeed())
		})

		It("should report whether a snapshot was deleted", func() {
			deleted, err := s.Delete("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeTrue())

			deleted, err = s.Delete("a")
			Expect(err).NotTo(HaveOccurred())
			Expect(deleted).To(BeFalse())
		})

		It("should list snapshot keys", func() {
			keys, err := s.Keys()

			Expect(err).NotTo(HaveOccurred())
			Expect(keys).To(Equal([]string{"a", "b", "c"}))
		})

		It("should remove only snapshot files", func() {
			n, err := s.ClearAll()

			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(3))
			Expect(filepath.Join(dir, "notes.txt")).To(BeAnExistingFile())
			keys, _ := s.Keys()
			Expect(keys).To(BeEmpty())
		})
	})
})
