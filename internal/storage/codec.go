package storage

import (
	"encoding/json"
	"errors"

	"pinet/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeDataset(d model.Dataset) ([]byte, error) {
	return json.Marshal(d)
}

func DecodeDataset(data []byte) (model.Dataset, error) {
	var dataset model.Dataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		return model.Dataset{}, err
	}
	if err := checkVersion(dataset.VersionedRecord); err != nil {
		return model.Dataset{}, err
	}
	return dataset, nil
}

func EncodeRun(r model.PredictionRun) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRun(data []byte) (model.PredictionRun, error) {
	var run model.PredictionRun
	if err := json.Unmarshal(data, &run); err != nil {
		return model.PredictionRun{}, err
	}
	if err := checkVersion(run.VersionedRecord); err != nil {
		return model.PredictionRun{}, err
	}
	return run, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
