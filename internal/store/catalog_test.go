package store_test

import (
	"context"
	"database/sql"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/21f1001434/Agentic-AI/internal/models"
	"github.com/21f1001434/Agentic-AI/internal/store"
)

var _ = Describe("CatalogStore", func() {
	var (
		ctx context.Context
		db  *sql.DB
		s   *store.Store
	)

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())

		s = store.NewStore(db, GinkgoT().TempDir())
		Expect(s.Migrate(ctx)).To(Succeed())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	put := func(key string, rows ...[]any) string {
		path, err := s.Snapshots().Put(ctx, key, models.NewDataset([]string{"v"}, rows))
		Expect(err).NotTo(HaveOccurred())
		return path
	}

	Context("Register", func() {
		// Given a snapshot file
		// When we register it under its key
		// Then it should be queryable as a view
		It("should expose the snapshot as a view", func() {
			// Arrange
			path := put("k1", []any{1}, []any{2})

			// Act
			err := s.Catalog().Register(ctx, "k1", path)

			// Assert
			Expect(err).NotTo(HaveOccurred())
			var total int
			Expect(db.QueryRowContext(ctx, `SELECT SUM(v)::BIGINT FROM "k1"`).Scan(&total)).To(Succeed())
			Expect(total).To(Equal(3))
		})

		It("should be idempotent", func() {
			path := put("k1", []any{1})

			Expect(s.Catalog().Register(ctx, "k1", path)).To(Succeed())
			Expect(s.Catalog().Register(ctx, "k1", path)).To(Succeed())

			count, err := s.Catalog().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))
		})
	})

	Context("List", func() {
		BeforeEach(func() {
			for _, k := range []string{"b2", "a1", "b1"} {
				Expect(s.Catalog().Register(ctx, k, put(k, []any{1}))).To(Succeed())
			}
		})

		It("should sort by name by default", func() {
			entries, err := s.Catalog().List(ctx)

			Expect(err).NotTo(HaveOccurred())
			names := []string{}
			for _, e := range entries {
				names = append(names, e.Name)
			}
			Expect(names).To(Equal([]string{"a1", "b1", "b2"}))
			Expect(entries[0].Path).To(Equal(s.Snapshots().PathFor("a1")))
			Expect(entries[0].RegisteredAt.IsZero()).To(BeFalse())
		})

		It("should filter and paginate", func() {
			entries, err := s.Catalog().List(ctx,
				store.ByNamePrefix("b"),
				store.WithDefaultSort(),
				store.WithLimit(1),
				store.WithOffset(1),
			)

			Expect(err).NotTo(HaveOccurred())
			Expect(entries).To(HaveLen(1))
			Expect(entries[0].Name).To(Equal("b2"))
		})
	})

	Context("Unregister", func() {
		It("should drop the view and the registry row", func() {
			Expect(s.Catalog().Register(ctx, "k1", put("k1", []any{1}))).To(Succeed())

			removed, err := s.Catalog().Unregister(ctx, "k1")

			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeTrue())
			_, err = db.ExecContext(ctx, `SELECT * FROM "k1"`)
			Expect(err).To(HaveOccurred())

			removed, err = s.Catalog().Unregister(ctx, "k1")
			Expect(err).NotTo(HaveOccurred())
			Expect(removed).To(BeFalse())
		})

		It("should unregister everything", func() {
			for _, k := range []string{"x", "y"} {
				Expect(s.Catalog().Register(ctx, k, put(k, []any{1}))).To(Succeed())
			}

			n, err := s.Catalog().UnregisterAll(ctx)

			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(2))
			count, _ := s.Catalog().Count(ctx)
			Expect(count).To(Equal(0))
		})
	})
})
