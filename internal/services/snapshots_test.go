package services_test

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/21f1001434/Agentic-AI/internal/services"
	"github.com/21f1001434/Agentic-AI/internal/store"
	srvErrors "github.com/21f1001434/Agentic-AI/pkg/errors"
)

var _ = Describe("SnapshotService", func() {
	var (
		ctx context.Context
		db  *sql.DB
		st  *store.Store
		svc *services.SnapshotService
	)

	put := func(key string, register bool) {
		path, err := st.Snapshots().Put(ctx, key, salesDataset())
		Expect(err).NotTo(HaveOccurred())
		if register {
			Expect(st.Catalog().Register(ctx, key, path)).To(Succeed())
		}
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		st = store.NewStore(db, GinkgoT().TempDir())
		Expect(st.Migrate(ctx)).To(Succeed())

		svc = services.NewSnapshotService(st)
	})

	AfterEach(func() {
		if st != nil {
			st.Close()
		}
	})

	Context("List", func() {
		BeforeEach(func() {
			put("aa01", true)
			put("aa02", true)
			put("bb01", true)
			put("aa03", false)
		})

		It("should list registered snapshots and unregistered files", func() {
			result, err := svc.List(ctx, services.SnapshotListParams{})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Total).To(Equal(3))
			Expect(result.Snapshots).To(HaveLen(3))
			Expect(result.Snapshots[0].Name).To(Equal("aa01"))
			Expect(result.Unregistered).To(Equal([]string{"aa03"}))
		})

		It("should filter by prefix and paginate", func() {
			result, err := svc.List(ctx, services.SnapshotListParams{Prefix: "aa", Limit: 1, Offset: 1})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Total).To(Equal(2))
			Expect(result.Snapshots).To(HaveLen(1))
			Expect(result.Snapshots[0].Name).To(Equal("aa02"))
			Expect(result.Unregistered).To(Equal([]string{"aa03"}))
		})

		It("should exclude unregistered files outside the prefix", func() {
			result, err := svc.List(ctx, services.SnapshotListParams{Prefix: "bb"})

			Expect(err).NotTo(HaveOccurred())
			Expect(result.Total).To(Equal(1))
			Expect(result.Unregistered).To(BeEmpty())
		})
	})

	Context("Get", func() {
		It("should load a registered snapshot with its catalog entry", func() {
			put("k1", true)
			put("k10", true)

			detail, err := svc.Get(ctx, "k1")

			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Key).To(Equal("k1"))
			Expect(detail.Path).To(Equal(st.Snapshots().PathFor("k1")))
			Expect(detail.Dataset.NumRows()).To(Equal(10))
			Expect(detail.Entry).NotTo(BeNil())
			Expect(detail.Entry.Name).To(Equal("k1"))
		})

		It("should load a snapshot file without a catalog entry", func() {
			put("k1", false)

			detail, err := svc.Get(ctx, "k1")

			Expect(err).NotTo(HaveOccurred())
			Expect(detail.Dataset.NumRows()).To(Equal(10))
			Expect(detail.Entry).To(BeNil())
		})

		It("should report a missing snapshot", func() {
			_, err := svc.Get(ctx, "missing")

			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("Delete", func() {
		It("should remove the file and the view", func() {
			put("k1", true)

			Expect(svc.Delete(ctx, "k1")).To(Succeed())

			_, err := os.Stat(st.Snapshots().PathFor("k1"))
			Expect(os.IsNotExist(err)).To(BeTrue())
			n, err := st.Catalog().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(BeZero())
		})

		It("should report a missing snapshot", func() {
			err := svc.Delete(ctx, "missing")

			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	It("should clear every snapshot", func() {
		put("k1", true)
		put("k2", false)
		Expect(os.WriteFile(filepath.Join(st.Snapshots().Dir(), "notes.txt"), []byte("x"), 0o644)).To(Succeed())

		removed, err := svc.Clear(ctx)

		Expect(err).NotTo(HaveOccurred())
		Expect(removed).To(Equal(2))
		result, err := svc.List(ctx, services.SnapshotListParams{})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Total).To(BeZero())
		Expect(result.Unregistered).To(BeEmpty())
		_, err = os.Stat(filepath.Join(st.Snapshots().Dir(), "notes.txt"))
		Expect(err).NotTo(HaveOccurred())
	})

	It("should expose snapshot rows to catalog queries", func() {
		put("k1", true)

		var total float64
		Expect(db.QueryRowContext(ctx, `SELECT SUM(amount) FROM "k1"`).Scan(&total)).To(Succeed())
		Expect(total).To(Equal(55.0))
	})
})
