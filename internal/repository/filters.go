package repository

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"edeon_enerji/internal/domain"
)

// scopeIn restricts field to the scope's ids. Unrestricted scopes add
// nothing.
func scopeIn(q bson.M, field string, s domain.Scope) {
	if !s.Restricted {
		return
	}
	ids := s.SiteIDs
	if ids == nil {
		ids = []string{}
	}
	q[field] = bson.M{"$in": ids}
}

// scopeInObjectIDs is scopeIn for _id fields.
func scopeInObjectIDs(q bson.M, s domain.Scope) {
	if !s.Restricted {
		return
	}
	q["_id"] = bson.M{"$in": toObjectIDs(s.SiteIDs)}
}

func timeRange(q bson.M, field string, r domain.TimeRange) {
	if r.From == nil && r.To == nil {
		return
	}
	cond := bson.M{}
	if r.From != nil {
		cond["$gte"] = *r.From
	}
	if r.To != nil {
		cond["$lt"] = *r.To
	}
	q[field] = cond
}

func searchAny(q bson.M, text string, fields ...string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	pattern := regexp.QuoteMeta(text)
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}
	q["$or"] = or
}

func plantQuery(f domain.PlantFilter) bson.M {
	q := bson.M{}
	scopeInObjectIDs(q, f.Scope)
	return q
}

func productionQuery(f domain.ProductionFilter) bson.M {
	q := bson.M{}
	scopeIn(q, "santralId", f.Scope.Narrow(f.SantralID))
	timeRange(q, "tarih", f.Range)
	return q
}

func productionFindOptions(f domain.ProductionFilter) *options.FindOptions {
	opts := options.Find().SetSort(bson.D{{Key: "tarih", Value: -1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}
	return opts
}

func faultQuery(f domain.FaultFilter) bson.M {
	q := bson.M{}
	scopeIn(q, "saha", f.Scope.Narrow(f.Saha))
	if f.Durum != "" {
		q["durum"] = f.Durum
	}
	if f.Oncelik != "" {
		q["oncelik"] = f.Oncelik
	}
	timeRange(q, "olusturmaTarihi", f.Range)
	searchAny(q, f.Search, "baslik", "aciklama", "sahaAdi", "konum")
	return q
}

func faultFindOptions(f domain.FaultFilter) *options.FindOptions {
	dir := -1
	if f.Ascending {
		dir = 1
	}

	var sort bson.D
	switch f.SortBy {
	case domain.SortByStatus:
		sort = bson.D{{Key: "durum", Value: dir}, {Key: "olusturmaTarihi", Value: -1}}
	case domain.SortByPriority:
		sort = bson.D{{Key: "oncelik", Value: dir}, {Key: "olusturmaTarihi", Value: -1}}
	case domain.SortBySite:
		sort = bson.D{{Key: "sahaAdi", Value: dir}, {Key: "olusturmaTarihi", Value: -1}}
	default:
		sort = bson.D{{Key: "olusturmaTarihi", Value: dir}}
	}

	opts := options.Find().SetSort(sort)
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
	}
	if f.Offset > 0 {
		opts.SetSkip(int64(f.Offset))
	}
	return opts
}

func maintenanceQuery(f domain.MaintenanceFilter) bson.M {
	q := bson.M{}
	scopeIn(q, "sahaId", f.Scope.Narrow(f.SahaID))
	timeRange(q, "tarih", f.Range)
	searchAny(q, f.Search, "genelNotlar", "kontrolEden.ad")
	return q
}

func workReportQuery(f domain.WorkReportFilter) bson.M {
	q := bson.M{}
	scopeIn(q, "saha", f.Scope.Narrow(f.Saha))
	timeRange(q, "tarih", f.Range)
	return q
}

func stockQuery(f domain.StockFilter) bson.M {
	q := bson.M{}
	scopeIn(q, "sahaId", f.Scope.Narrow(f.SahaID))
	if f.CriticalOnly {
		q["$expr"] = bson.M{"$lte": bson.A{"$miktar", "$kritikSeviye"}}
	}
	return q
}
